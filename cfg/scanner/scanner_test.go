package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"banana",
	"1+12",
	"Book that flight!",
	"The Proper-Noun isn't here.",
	"1,22,333",
}

var tokenCounts = []int{1, 3, 4, 5, 5}

func TestWordTokenizer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := WordTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestTokenTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	tokens := Collect(WordTokenizer("test", strings.NewReader(`book 12 "a b" !`), QuotedStrings(true)))
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, have %v", tokens)
	}
	expected := []int{Word, Number, Quoted, Punct}
	for i, token := range tokens {
		if int(token.TokType()) != expected[i] {
			t.Errorf("expected token %v to be of type %d, is %d", token, expected[i], token.TokType())
		}
	}
	if tokens[2].Lexeme() != "a b" {
		t.Errorf("expected quoted string to be unquoted, is %q", tokens[2].Lexeme())
	}
	if tokens[1].Span().From() != 5 || tokens[1].Span().To() != 7 {
		t.Errorf("expected number to span (5…7), is %v", tokens[1].Span())
	}
}

func TestSplit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	if diff := cmp.Diff([]string{"Book", "that", "flight", "!"}, Split("Book that flight!")); diff != "" {
		t.Errorf("words differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "*", "(", "2", "+", "3", ")"}, Split("1*(2+3)")); diff != "" {
		t.Errorf("words differ (-want +got):\n%s", diff)
	}
	if len(Split("   ")) != 0 {
		t.Errorf("expected blank input to produce no words")
	}
}

func TestErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.scanner")
	defer teardown()
	//
	var errs []error
	tokenizer := WordTokenizer("test", strings.NewReader(`say "unterminated`), QuotedStrings(true))
	tokenizer.SetErrorHandler(func(err error) {
		errs = append(errs, err)
	})
	Words(tokenizer)
	if len(errs) == 0 {
		t.Fatalf("expected error for unterminated string")
	}
	t.Logf("error = %v", errs[0])
}
