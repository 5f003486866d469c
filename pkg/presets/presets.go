package presets

import (
	"embed"
)

// The directory inside Presets which holds the configs.
const ConfigsDir = "configs"

//go:embed configs/*.yaml
var Presets embed.FS
