package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/kord-legal/kord/pkg/domain/model"
)

func TestNewBrief(t *testing.T) {
	t.Run("valid brief", func(t *testing.T) {
		brief, err := model.NewBrief("Plaintiff submits this brief.", "brief.txt")
		gt.NoError(t, err).Required()
		gt.Equal(t, "Plaintiff submits this brief.", brief.Text)
		gt.Equal(t, "brief.txt", brief.Filename)
	})

	t.Run("filename is optional", func(t *testing.T) {
		brief, err := model.NewBrief("Pasted text.", "")
		gt.NoError(t, err).Required()
		gt.Equal(t, "", brief.Filename)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := model.NewBrief("", "brief.txt")
		gt.Error(t, err)
	})

	t.Run("whitespace only text", func(t *testing.T) {
		_, err := model.NewBrief("  \n\t ", "brief.txt")
		gt.Error(t, err)
	})
}

func TestBriefWordCount(t *testing.T) {
	brief, err := model.NewBrief("one  two\nthree\tfour", "")
	gt.NoError(t, err).Required()
	gt.Equal(t, 4, brief.WordCount())
}
