package commands

import (
	"reflect"
	"testing"
)

func TestParseBulkInput(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		title string
		texts []string
	}{
		{"empty", "", "", []string{}},
		{"blank", " \n\t　 ", "", []string{}},
		{"plain", "a b", "", []string{"a", "b"}},
		{"newlines", "a\r\nb\nc", "", []string{"a", "b", "c"}},
		{"ideographic space", "朝　昼", "", []string{"朝", "昼"}},
		{"double hash", "##Boss a b", "Boss", []string{"a", "b"}},
		{"single hash", "#Boss a", "Boss", []string{"a"}},
		{"later markers stay tasks", "##Boss ##Big a", "Boss", []string{"##Big", "a"}},
		{"hash words are tasks", "buy #milk ##Boss #1", "", []string{"buy", "#milk", "##Boss", "#1"}},
		{"leading blank lines", "\n  #Boss #bug", "Boss", []string{"#bug"}},
		{"bare marker", "## a", "", []string{"a"}},
		{"triple hash keeps one", "###x a", "#x", []string{"a"}},
		{"title only", "##Only", "Only", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseBulkInput(tc.in)
			if got.Title != tc.title {
				t.Fatalf("title = %q, want %q", got.Title, tc.title)
			}
			if !reflect.DeepEqual(got.Texts, tc.texts) {
				t.Fatalf("texts = %#v, want %#v", got.Texts, tc.texts)
			}
		})
	}
}

func TestParseTaskListKeepsHashWords(t *testing.T) {
	got := ParseTaskList("#bug fix\n##2")
	want := []string{"#bug", "fix", "##2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("texts = %#v, want %#v", got, want)
	}
	if got := ParseTaskList(" \n"); got == nil || len(got) != 0 {
		t.Fatalf("blank input = %#v, want empty slice", got)
	}
}
