package completion

// CompletionData describes how the generated script calls back into the program
type CompletionData struct {
	// CompleteFlag is the option which prints the candidates for a partial command line,
	// one per line
	CompleteFlag string
	// Description is written as a comment at the top of the script
	Description string
}

// CompletionPaths holds information about completion script locations
type CompletionPaths struct {
	Primary   string // directory the shell reads user completions from
	Fallback  string // used when Primary cannot be created
	Extension string // file extension the shell expects, if any
	Comment   string
}

func (d CompletionData) completeFlag() string {
	if d.CompleteFlag == "" {
		return "--autocomplete"
	}

	return d.CompleteFlag
}
