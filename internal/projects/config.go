package projects

type Config struct {
	// WorkspaceDir holds one repository directory per project.
	WorkspaceDir string
}
