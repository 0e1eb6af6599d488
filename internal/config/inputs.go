package config

import "strings"

// Pipeline agent environment
const (
	EnvAgentVersion      = "AGENT_VERSION"
	EnvCollectionURL     = "ENDPOINT_URL_SYSTEMVSSCONNECTION"
	EnvCollectionToken   = "ENDPOINT_AUTH_PARAMETER_SYSTEMVSSCONNECTION_ACCESSTOKEN"
	EnvSystemAccessToken = "SYSTEM_ACCESSTOKEN"
	EnvTeamProject       = "SYSTEM_TEAMPROJECT"
	EnvDefaultWorkingDir = "SYSTEM_DEFAULTWORKINGDIRECTORY"
	EnvInputRepo         = "INPUT_REPO"
	EnvInputGitPath      = "INPUT_GITPATH"
	EnvInputLocalPath    = "INPUT_LOCALPATH"
	EnvInputBranch       = "INPUT_BRANCH"
)

// Interactive environment
const (
	EnvServerURL = "TFSURL"
	EnvPAT       = "PAT"
	EnvProject   = "PROJECT"
)

// Getenv reads one environment variable; os.Getenv in production
type Getenv func(key string) string

// Inputs are the parameters of one run, independent of where they came from
type Inputs struct {
	// Agent is set when running as a pipeline step
	Agent bool
	URL   string
	Token string
	// Bearer marks Token as an OAuth bearer token rather than a personal access token
	Bearer     bool
	Project    string
	RepoID     string
	RemotePath string
	LocalPath  string
	Ref        string
	// DefaultWorkingDirectory is the destination when LocalPath is empty
	DefaultWorkingDirectory string
}

// IsAgent reports whether the process runs inside a pipeline agent
func IsAgent(getenv Getenv) bool {
	return getenv(EnvAgentVersion) != ""
}

// ResolveInputs probes the environment once and builds the inputs from the
// matching adapter
func ResolveInputs(getenv Getenv, args []string) Inputs {
	if IsAgent(getenv) {
		return FromAgent(getenv)
	}
	return FromInteractive(getenv, args)
}

// FromAgent reads the task inputs and the collection connection of a pipeline agent
func FromAgent(getenv Getenv) Inputs {
	token := getenv(EnvCollectionToken)
	if token == "" {
		token = getenv(EnvSystemAccessToken)
	}

	return Inputs{
		Agent:                   true,
		URL:                     getenv(EnvCollectionURL),
		Token:                   token,
		Bearer:                  true,
		Project:                 getenv(EnvTeamProject),
		RepoID:                  strings.TrimSpace(getenv(EnvInputRepo)),
		RemotePath:              getenv(EnvInputGitPath),
		LocalPath:               getenv(EnvInputLocalPath),
		Ref:                     strings.TrimSpace(getenv(EnvInputBranch)),
		DefaultWorkingDirectory: getenv(EnvDefaultWorkingDir),
	}
}

// FromInteractive reads the server and credentials from the environment and
// the mirror parameters from args: repo, remote path, local path, ref
func FromInteractive(getenv Getenv, args []string) Inputs {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	return Inputs{
		URL:                     getenv(EnvServerURL),
		Token:                   getenv(EnvPAT),
		Project:                 getenv(EnvProject),
		RepoID:                  arg(0),
		RemotePath:              arg(1),
		LocalPath:               arg(2),
		Ref:                     arg(3),
		DefaultWorkingDirectory: getenv(EnvDefaultWorkingDir),
	}
}

// ApplySource fills the connection fields the environment left empty
func (in *Inputs) ApplySource(src SourceConfig) {
	if in.URL == "" {
		in.URL = src.URL
	}
	if in.Token == "" {
		in.Token = src.Token
		in.Bearer = false
	}
	if in.Project == "" {
		in.Project = src.Project
	}
}
