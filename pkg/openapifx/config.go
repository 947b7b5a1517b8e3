package openapifx

type Config struct {
	// Enabled mounts the documentation UI.
	Enabled bool
	// PublicHost overrides the host advertised by the spec.
	PublicHost string
	// PublicPath overrides the base path advertised by the spec.
	PublicPath string
}
