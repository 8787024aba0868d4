package interpreter

// DataHolder is the execution context handed to every interpreter of a run.
// It is built once by the caller and copied into each interpreter; nothing in
// the pipeline writes back to it. Either text field may be empty.
type DataHolder struct {
	// CurrentLine is the raw text of the line under the cursor.
	CurrentLine string
	// CurrentBloc is the raw text of the selected region, possibly the whole file.
	CurrentBloc string
	// WorkDir is the scratch root for this run.
	WorkDir string
	// Filepath is the path of the file the snippet was taken from, if known.
	Filepath string
	// Filetype is the editor's language tag for the snippet.
	Filetype string
}
