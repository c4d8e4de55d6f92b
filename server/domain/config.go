package domain

// Config is the display-name profile a client stores under its owner token.
type Config struct {
	DisplayName string
	OwnerToken  string
}

func NewConfig(displayName, ownerToken string) Config {
	return Config{
		DisplayName: displayName,
		OwnerToken:  ownerToken,
	}
}

func (c Config) IsValid() bool {
	return c.OwnerToken != "" && ValidateDisplayName(c.DisplayName) == nil
}
