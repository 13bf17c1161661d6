// Package config loads the YAML run file of the convection velocity tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-convection/internal/logging"
	"github.com/cwbudde/algo-convection/measure/convection"
)

// ErrInvalid reports a run file that parsed but failed validation.
var ErrInvalid = errors.New("config: invalid")

// Config is one analysis run over a sensor pair.
type Config struct {
	Sensor1    Sensor         `yaml:"sensor1"`
	Sensor2    Sensor         `yaml:"sensor2"`
	SampleRate float64        `yaml:"sample_rate" default:"51200" validate:"gt=0"`
	Welch      Welch          `yaml:"welch"`
	Coherence  float64        `yaml:"coherence_threshold" default:"0.1" validate:"gt=0,lte=1"`
	HighPass   HighPass       `yaml:"highpass"`
	Output     Output         `yaml:"output"`
	Log        logging.Config `yaml:"log"`
}

// Sensor is one probe: its streamwise position in meters and its recording.
type Sensor struct {
	X      float64 `yaml:"x"`
	Path   string  `yaml:"path" validate:"required"`
	Column int     `yaml:"column" validate:"gte=0"`
}

// Welch selects the segmentation either directly in samples or through a
// frequency resolution. An explicit Window takes precedence.
type Welch struct {
	Window       int     `yaml:"window" validate:"gte=0"`
	Overlap      int     `yaml:"overlap" validate:"gte=0"`
	ResolutionHz float64 `yaml:"resolution_hz" default:"16" validate:"gt=0"`
}

// HighPass configures the Butterworth preprocessing filter.
type HighPass struct {
	Enabled  *bool   `yaml:"enabled"`
	CutoffHz float64 `yaml:"cutoff_hz" default:"60" validate:"gt=0"`
	Order    int     `yaml:"order" default:"2" validate:"gte=1,lte=16"`
}

// On reports whether the filter runs; an omitted flag means enabled.
func (h HighPass) On() bool { return h.Enabled == nil || *h.Enabled }

// Output selects where results go.
type Output struct {
	Dir   string `yaml:"dir" default:"out"`
	Plots *bool  `yaml:"plots"`
}

// PlotsOn reports whether plots are rendered; an omitted flag means enabled.
func (o Output) PlotsOn() bool { return o.Plots == nil || *o.Plots }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns a configuration with every default applied and no inputs.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	return &c
}

// Load reads, defaults and validates the run file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes a run file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and the cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Sensor1.X == c.Sensor2.X {
		return fmt.Errorf("%w: sensor positions must differ (x = %v)", ErrInvalid, c.Sensor1.X)
	}
	if c.Welch.Window > 0 && c.Welch.Overlap >= c.Welch.Window {
		return fmt.Errorf("%w: welch.overlap %d must be < welch.window %d", ErrInvalid, c.Welch.Overlap, c.Welch.Window)
	}
	if c.HighPass.On() && c.HighPass.CutoffHz >= c.SampleRate/2 {
		return fmt.Errorf("%w: highpass.cutoff_hz %v must be below Nyquist %v", ErrInvalid, c.HighPass.CutoffHz, c.SampleRate/2)
	}
	return nil
}

// Geometry returns the sensor positions.
func (c *Config) Geometry() convection.Geometry {
	return convection.Geometry{X1: c.Sensor1.X, X2: c.Sensor2.X}
}

// SpectralParams resolves the Welch block. Without an explicit window the
// segment length is fs/resolution with half overlap; an explicit window with
// zero overlap also gets half overlap.
func (c *Config) SpectralParams() (convection.SpectralParams, error) {
	var (
		p   convection.SpectralParams
		err error
	)
	if c.Welch.Window > 0 {
		p = convection.DefaultSpectralParams(c.Welch.Window)
		if c.Welch.Overlap > 0 {
			p.Overlap = c.Welch.Overlap
		}
	} else {
		p, err = convection.ParamsForResolution(c.SampleRate, c.Welch.ResolutionHz)
		if err != nil {
			return p, err
		}
	}
	p.CoherenceThreshold = c.Coherence
	return p, p.Validate()
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
