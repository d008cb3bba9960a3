package domain

type Response struct {
	ChatID           int64
	ReplyToMessageID int
	Text             string
	Err              error
}
