// Package state reads hcl configuration with file includes.
package state

import (
	"sync"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/charlcd/hardware/hd44780"
	"github.com/temoto/charlcd/helpers"
	"github.com/temoto/charlcd/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Hardware struct {
		HD44780 struct { //nolint:maligned
			Enable        bool                  `hcl:"enable"`
			Codepage      string                `hcl:"codepage"`
			PinChip       string                `hcl:"pin_chip"`
			Pinmap        hd44780.PinAssignment `hcl:"pinmap"`
			Width         int                   `hcl:"width"`
			LineAddresses []int                 `hcl:"line_addresses"`
			ScrollDelay   int                   `hcl:"scroll_delay"` // milliseconds
		} `hcl:"hd44780"`
	} `hcl:"hardware"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) Geometry() hd44780.Geometry {
	g := hd44780.Geometry{Width: c.Hardware.HD44780.Width}
	for _, a := range c.Hardware.HD44780.LineAddresses {
		g.LineAddrs = append(g.LineAddrs, byte(a))
	}
	return g
}

func (c *Config) ScrollDelay() time.Duration {
	return time.Duration(c.Hardware.HD44780.ScrollDelay) * time.Millisecond
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}

func MustReadConfigFile(log *log2.Log, path string) *Config {
	dir, name := splitPath(path)
	fs := NewOsFullReader(dir)
	return MustReadConfig(log, fs, name)
}
