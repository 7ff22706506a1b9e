package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Skufu/GoPredict/internal/predict"
	"github.com/Skufu/GoPredict/internal/recommend"
)

func sampleResult() predict.Result {
	tables := recommend.NewTables(recommend.Dataset{
		Diets:    []recommend.Row{{Disease: "Diabetes", Values: []string{"['Balanced Diet', 'Low Sugar']"}}},
		Workouts: []recommend.Row{{Disease: "Diabetes", Values: []string{"Walk daily, 30 minutes"}}},
	})
	return predict.Result{
		Disease:  "Diabetes",
		Label:    3,
		Known:    true,
		Sections: tables.Lookup("Diabetes"),
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleResult()); err != nil {
		t.Fatalf("text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Predicted Disease: Diabetes\n",
		"Diet Recommendations\n- Balanced Diet\n- Low Sugar\n",
		"Medications\nNo medication recommendations available.\n",
		"Precautions\nNo precaution recommendations available.\n",
		"Workout Suggestions\nWalk daily, 30 minutes\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestHTMLResult(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, Page{
		Symptoms: []string{"itching", "chills"},
		Selected: map[string]bool{"chills": true},
		Result:   func() *predict.Result { r := sampleResult(); return &r }(),
	})
	if err != nil {
		t.Fatalf("html: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if n := doc.Find("#disease").Length(); n != 1 {
		t.Fatalf("expected exactly one disease heading, got %d", n)
	}
	if got := doc.Find("#disease").Text(); got != "Predicted Disease: Diabetes" {
		t.Fatalf("unexpected heading %q", got)
	}
	if doc.Find("option[selected]").AttrOr("value", "") != "chills" {
		t.Fatal("selected symptom not preserved")
	}

	sections := doc.Find("section.category")
	if sections.Length() != 4 {
		t.Fatalf("expected 4 sections, got %d", sections.Length())
	}
	sections.Each(func(_ int, s *goquery.Selection) {
		items := s.Find(".item").Length()
		notices := s.Find(".notice").Length()
		if (items > 0) == (notices > 0) {
			t.Fatalf("section %s must show items or a notice, not both or neither", s.AttrOr("data-category", "?"))
		}
	})

	diet := doc.Find(`section[data-category="diet"] li`)
	if diet.Length() != 2 || diet.First().Text() != "Balanced Diet" {
		t.Fatalf("unexpected diet items: %d", diet.Length())
	}
	if got := doc.Find(`section[data-category="workout"] p.item`).Text(); got != "Walk daily, 30 minutes" {
		t.Fatalf("unexpected workout %q", got)
	}
	if got := doc.Find(`section[data-category="precaution"] .notice`).Text(); got != "No precaution recommendations available." {
		t.Fatalf("unexpected precaution notice %q", got)
	}
}

func TestHTMLWarningWithoutResult(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, Page{Symptoms: []string{"itching"}, Warning: predict.NoSymptomsMessage}); err != nil {
		t.Fatalf("html: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if doc.Find(".warning").Text() != predict.NoSymptomsMessage {
		t.Fatal("warning not rendered")
	}
	if doc.Find("#disease").Length() != 0 || doc.Find("section").Length() != 0 {
		t.Fatal("no result should be rendered with a warning")
	}
}
