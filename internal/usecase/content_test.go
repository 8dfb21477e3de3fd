package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryInfoIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		msg, brochure := CategoryInfo("wall")
		assert.Equal(t, wallProducts, msg)
		assert.Equal(t, BrochureEasyPlus, brochure)
	}
}

func TestCategoryInfoCaseInsensitive(t *testing.T) {
	_, brochure := CategoryInfo("Ceiling")
	assert.Equal(t, BrochureInnovPlus, brochure)
}

func TestSpecificProductInfo(t *testing.T) {
	assert.Contains(t, SpecificProductInfo("Soffit"), "real wood appearance")
	assert.Contains(t, SpecificProductInfo("dura+"), "UV resistance")
	assert.Empty(t, SpecificProductInfo("unknown panel"))
}
