package config

const (
	defaultMappingFile   = "wem_mapping.json"
	defaultAnalysisJSON  = "ps4_wem_analysis.json"
	defaultAnalysisXLSX  = "ps4_wem_analysis.xlsx"
	defaultRenameMode    = RenameModeCopy
	defaultOtherCategory = "Other"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Rename modes.
const (
	RenameModeCopy = "copy"
	RenameModeMove = "move"
)

// DefaultPrefixes is the ordered category prefix list used by the analyzer.
var DefaultPrefixes = []string{
	"Act_",
	"Ambience_",
	"Choices",
	"Foley_",
	"Footsteps_",
	"Frontend",
	"Generic_",
	"Global_",
	"music_",
	"Sequences_",
	"SFX_",
	"VFX_",
	"Wendigo_",
}

// Default returns a Config populated with repository defaults. Relative output
// paths resolve against the working directory during normalization.
func Default() Config {
	prefixes := make([]string, len(DefaultPrefixes))
	copy(prefixes, DefaultPrefixes)
	return Config{
		Paths: Paths{
			MappingFile:  defaultMappingFile,
			AnalysisJSON: defaultAnalysisJSON,
			AnalysisXLSX: defaultAnalysisXLSX,
		},
		Rename: Rename{
			Mode: defaultRenameMode,
		},
		Analysis: Analysis{
			Prefixes:      prefixes,
			OtherCategory: defaultOtherCategory,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
