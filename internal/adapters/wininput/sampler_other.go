//go:build !windows

package wininput

import (
	"fmt"

	"github.com/ice2642/hcorner/internal/core/hotcorner"
)

type Sampler struct{}

func NewSampler() (*Sampler, error) {
	return nil, fmt.Errorf("windows pointer sampler is only available on Windows")
}

func (s *Sampler) Sample() (hotcorner.Reading, bool) {
	return hotcorner.Reading{}, false
}

func (s *Sampler) Close() {}
