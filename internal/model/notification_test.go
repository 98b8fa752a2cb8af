package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneIsDeep(t *testing.T) {
	src := Notification{
		ID:          "n-1",
		Title:       "碳中和技术评估",
		Tags:        []string{"重点"},
		Keywords:    []string{"碳中和"},
		Attachments: []Attachment{{Name: "附件.pdf", URL: "https://example.gov.cn/a.pdf"}},
	}

	got := src.Clone()
	got.Tags[0] = "changed"
	got.Keywords[0] = "changed"
	got.Attachments[0].Name = "changed"

	assert.Equal(t, "重点", src.Tags[0])
	assert.Equal(t, "碳中和", src.Keywords[0])
	assert.Equal(t, "附件.pdf", src.Attachments[0].Name)
}

func TestClonePreservesEmptySlices(t *testing.T) {
	src := Notification{ID: "n-1", Tags: []string{}, Keywords: []string{}}

	got := src.Clone()

	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.Keywords)
	assert.Nil(t, got.Attachments)
	assert.Equal(t, src, got)
}
