package domain

// UserRepository remembers every chat that has talked to the bot, so the
// broadcast flow can reach them later.
type UserRepository interface {
	SaveUser(chatID int64) error
	ListChatIDs() ([]int64, error)
}
