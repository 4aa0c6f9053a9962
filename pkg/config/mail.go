package config

import "fmt"

// MailConfig describes the SMTP settings for the contact form. When
// disabled, contact messages are logged instead of mailed.
type MailConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	To       string `koanf:"to"`
}

func (c *MailConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("mail is enabled but host is not configured")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid mail port: %d", c.Port)
	}
	if c.From == "" || c.To == "" {
		return fmt.Errorf("mail is enabled but from/to addresses are not configured")
	}
	return nil
}
