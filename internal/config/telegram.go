package config

type TelegramConfig struct {
	ApiToken string `yaml:"token"`
	Owner    int64  `yaml:"owner-id"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

// OwnerID is the only user the bot answers to. The bot refuses to start
// when it is zero.
func (t *TelegramConfig) OwnerID() int64 {
	return t.Owner
}
