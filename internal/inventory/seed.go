package inventory

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSeed: файл остатков не разобран или содержит некорректные значения.
var ErrInvalidSeed = errors.New("invalid stock seed")

// Seed: формат YAML-файла с остатками.
//
//	products:
//	  - id: 1
//	    quantity: 10
type Seed struct {
	Products []SeedItem `yaml:"products"`
}

type SeedItem struct {
	ID       int64 `yaml:"id"`
	Quantity int   `yaml:"quantity"`
}

// Levels: остатки как map; повтор товара в файле считается ошибкой.
func (s Seed) Levels() (map[int64]int, error) {
	levels := make(map[int64]int, len(s.Products))
	for i, p := range s.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: products[%d]: id must be positive", ErrInvalidSeed, i)
		}
		if p.Quantity < 0 {
			return nil, fmt.Errorf("%w: products[%d]: negative quantity", ErrInvalidSeed, i)
		}
		if _, dup := levels[p.ID]; dup {
			return nil, fmt.Errorf("%w: products[%d]: duplicate id %d", ErrInvalidSeed, i, p.ID)
		}
		levels[p.ID] = p.Quantity
	}
	return levels, nil
}

// DecodeSeed разбирает YAML с остатками.
func DecodeSeed(r io.Reader) (map[int64]int, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return seed.Levels()
}

// LoadSeedFile: DecodeSeed для файла.
func LoadSeedFile(path string) (map[int64]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stock seed: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}
