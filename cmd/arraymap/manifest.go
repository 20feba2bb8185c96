package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/arraymap/pkg/arraymap"
)

// manifest is the YAML description of a container's arrays, eg:
//
//	arrays:
//	  - dtype: "<f4"
//	    shape: [8, 16, 32]
//	  - dtype: "|b1"
//	    shape: [30, 15]
//	  - dtype: "<i8"
//	    shape: []        # scalar
type manifest struct {
	Arrays []manifestArray `yaml:"arrays"`
}

type manifestArray struct {
	DType string `yaml:"dtype"`
	Shape []int  `yaml:"shape"`
}

func loadManifest(path string) ([]arraymap.DType, [][]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return parseManifest(raw)
}

func parseManifest(raw []byte) ([]arraymap.DType, [][]int, error) {
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Arrays) == 0 {
		return nil, nil, fmt.Errorf("manifest lists no arrays")
	}

	dtypes := make([]arraymap.DType, len(m.Arrays))
	shapes := make([][]int, len(m.Arrays))
	for i, a := range m.Arrays {
		d, err := arraymap.ParseDType(a.DType)
		if err != nil {
			return nil, nil, fmt.Errorf("manifest array %d: %w", i, err)
		}
		dtypes[i] = d
		shapes[i] = a.Shape
		if shapes[i] == nil {
			shapes[i] = []int{}
		}
	}
	return dtypes, shapes, nil
}
