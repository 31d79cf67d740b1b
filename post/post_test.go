package post

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDeterministic(t *testing.T) {
	c := Content{Title: "Hello", Body: "World", Description: "greeting", Format: Markdown}

	first, err := Codec{}.Encode(c)
	require.NoError(t, err)
	second, err := Codec{}.Encode(c)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRoundTrip(t *testing.T) {
	cases := []Content{
		{Title: "Hello", Body: "World", Format: Markdown},
		{Title: "Page", Body: "<p>hi</p>", Description: "a page", Format: HTML},
		{Title: "Notes", Format: Plain},
	}
	for _, c := range cases {
		data, err := Codec{}.Encode(c)
		require.NoError(t, err)

		got, err := Codec{}.Decode(data)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		c    Content
	}{
		{"empty title", Content{Body: "body", Format: Markdown}},
		{"missing format", Content{Title: "t", Body: "body"}},
		{"unknown format", Content{Title: "t", Body: "body", Format: "docx"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Codec{}.Encode(c.c)
			require.Error(t, err)
		})
	}
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"unknown field", `{"title":"t","format":"md","author":"x"}`},
		{"empty title", `{"title":"","content":"b","format":"md"}`},
		{"bad format", `{"title":"t","content":"b","format":"docx"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Codec{}.Decode([]byte(c.data))
			require.Error(t, err)
		})
	}
}
