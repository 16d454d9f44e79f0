package models

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeRunConfig overlays raw onto base. Keys follow the mapstructure
// tags of RunConfig. A "weights" entry replaces base's weights entirely, so
// a partial set is rejected by Validate rather than silently completed.
// Unknown keys are an error.
func DecodeRunConfig(base RunConfig, raw map[string]any) (RunConfig, error) {
	cfg := base
	if len(raw) == 0 {
		return cfg, nil
	}
	if _, ok := raw["weights"]; ok {
		cfg.Weights = Weights{}
	}
	if err := decode(raw, &cfg); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// DecodeWeights builds Weights from key=value pairs such as those given on
// the command line. Missing keys are zero.
func DecodeWeights(raw map[string]string) (Weights, error) {
	var w Weights
	if err := decode(raw, &w); err != nil {
		return Weights{}, fmt.Errorf("%w: %v", ErrInvalidWeights, err)
	}
	return w, nil
}

func decode(input, result any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
