package config

import "fmt"

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// SupabaseConfig points at the hosted backend. The anon key is sent as the
// apikey header on every REST call; the signed-in access token rides in the
// Authorization header on top of it.
type SupabaseConfig struct {
	URL            string `mapstructure:"url"`
	AnonKey        string `mapstructure:"anon_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type AuthConfig struct {
	Email      string `mapstructure:"email"`
	Password   string `mapstructure:"password"`
	AdminEmail string `mapstructure:"admin_email"`
}

type StorageConfig struct {
	Bucket string `mapstructure:"bucket"`
	Folder string `mapstructure:"folder"`
}

type BoardConfig struct {
	TeamFile string `mapstructure:"team_file"`
}

func (s *SupabaseConfig) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("supabase.url is required")
	}
	if s.AnonKey == "" {
		return fmt.Errorf("supabase.anon_key is required")
	}
	return nil
}
