package config

type Args struct {
	// Global Switches and Flags
	Verbose []bool `arg:"-v" help:"see more detail (verbose). -vvv is not advised for normal use."`
	Quiet   []bool `arg:"-q" help:"see less detail (quiet)."`
	Debug   bool   `arg:"--debug" help:"display extended information about errors. Automatically implies -vv."`
	// Handled by go-arg
	// Help bool `arg:"-h,--help" help:"show this usage information"`

	// Generation inputs
	PayloadFile  string `arg:"--payload" help:"path to the JSON well payload to merge into the template"`
	TemplateFile string `arg:"--template" help:"path to the EDM template XML. Defaults to edm_template.xml next to the binary"`

	// Generation switches
	TemplateMode bool `arg:"--template-mode" help:"patch the existing template in place instead of regenerating sections"`
	BinaryData   bool `arg:"--binary-data" help:"inject the binary data library fragment into the output"`

	// Output options
	OutputFile string `arg:"--output" help:"file to write the generated XML to. Defaults to stdout"`
}
