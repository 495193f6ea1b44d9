package lib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog"

	"github.com/edmgen/edmgen/lib/config"
	"github.com/edmgen/edmgen/lib/edm"
	"github.com/edmgen/edmgen/lib/payload"
	"github.com/edmgen/edmgen/lib/util"
)

var Version = "1.0.0"

// DefaultTemplateName is the bundled template used when --template is not given
const DefaultTemplateName = "edm_template.xml"

type EdmGen struct {
	logger zerolog.Logger

	templateFile string
	outputFile   string
	templateMode bool
	binaryData   bool
}

func NewEdmGen() *EdmGen {
	return &EdmGen{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
}

func (self *EdmGen) ArgParse() {
	args := &config.Args{}
	arg.MustParse(args)

	self.setVerbosity(args)

	if args.PayloadFile == "" {
		self.Fatal("Parameter error: a --payload JSON file is required")
	}

	self.templateFile = args.TemplateFile
	if self.templateFile == "" {
		self.templateFile = filepath.Join(filepath.Dir(os.Args[0]), DefaultTemplateName)
	}
	if !util.IsFile(self.templateFile) {
		self.Fatal("Parameter error: template file %s does not exist", self.templateFile)
	}
	self.outputFile = args.OutputFile
	self.templateMode = args.TemplateMode
	self.binaryData = args.BinaryData

	self.Notice("EdmGen Version %s", Version)
	self.Notice("Using template %s", self.templateFile)

	self.doGenerate(args.PayloadFile)
}

func (self *EdmGen) doGenerate(payloadFile string) {
	p, err := payload.LoadFile(payloadFile)
	self.FatalIfError(err, "Failed to load payload %s", payloadFile)

	var out string
	if self.templateMode {
		self.Info("Patching template in place (template mode)")
		editor, err := edm.NewTemplateEditor(self.logger, self.templateFile)
		self.FatalIfError(err, "Failed to load template %s", self.templateFile)
		err = editor.UpdateFromPayload(p, self.binaryData)
		self.FatalIfError(err, "Failed to update template from payload")
		out, err = editor.XMLString()
		self.FatalIfError(err, "Failed to serialize document")
	} else {
		gen := edm.NewGenerator(self.logger, self.templateFile)
		gen.InjectBinaryData = self.binaryData
		out, err = gen.Generate(p)
		self.FatalIfError(err, "Failed to generate document")
	}

	if self.outputFile == "" {
		fmt.Println(out)
		return
	}
	err = util.WriteFile(out, self.outputFile)
	self.FatalIfError(err, "Failed to save output to %s", self.outputFile)
	self.Notice("Saved generated XML as %s", self.outputFile)
}

func (self *EdmGen) FatalIfError(err error, s string, args ...interface{}) {
	if err != nil {
		self.Fatal(s+": "+err.Error(), args...)
	}
}

func (self *EdmGen) Fatal(s string, args ...interface{}) {
	self.logger.Fatal().Msgf(s, args...)
}

func (self *EdmGen) Warning(s string, args ...interface{}) {
	self.logger.Warn().Msgf(s, args...)
}
func (self *EdmGen) Notice(s string, args ...interface{}) {
	// TODO(nth) differentiate between notice and info
	self.Info(s, args...)
}
func (self *EdmGen) Info(s string, args ...interface{}) {
	self.logger.Info().Msgf(s, args...)
}

// remember, lower level is higher verbosity
func (self *EdmGen) setVerbosity(args *config.Args) {
	level := zerolog.InfoLevel

	if args.Debug {
		level = zerolog.TraceLevel
	}

	for _, v := range args.Verbose {
		if v {
			level -= 1
		} else {
			level += 1
		}
	}
	for _, q := range args.Quiet {
		if q {
			level += 1
		} else {
			level -= 1
		}
	}

	if level > zerolog.PanicLevel {
		level = zerolog.PanicLevel
	}
	if level < zerolog.TraceLevel {
		level = zerolog.TraceLevel
	}

	self.logger = self.logger.Level(level)
}
