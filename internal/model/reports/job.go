package reports

// Job is an asynchronous report request: generate for UserID, deliver to ChatID.
type Job struct {
	UserID string `json:"userId"`
	ChatID int64  `json:"chatId"`
	Month  string `json:"month"`
	Year   int    `json:"year"`
}

func (j Job) Request() Request {
	return Request{Month: j.Month, Year: j.Year}
}
