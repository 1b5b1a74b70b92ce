package fits

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HDUSpec declares the BITPIX element type and axis lengths of one HDU a
// Writer will create. Axes are in NAXIS order: Axes[0] is NAXIS1, Axes[1]
// is NAXIS2, and so on. Axes[0] carries the largest stride in the data
// block layout (see internal/block.Offset), not the smallest.
type HDUSpec struct {
	Bitpix int     `yaml:"bitpix"`
	Axes   []int64 `yaml:"axes"`
}

// Schema is the ordered list of HDUs a Writer will create, in file order.
type Schema []HDUSpec

// LoadSchema reads a YAML document of the form:
//
//	hdus:
//	  - bitpix: -32
//	    axes: [512, 512]
//	  - bitpix: 16
//	    axes: [1024]
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	var doc struct {
		HDUs []HDUSpec `yaml:"hdus"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return Schema(doc.HDUs), nil
}
