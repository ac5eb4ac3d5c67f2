package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/folio"
)

// CheckContract verifies that html carries the search DOM contract: every
// contract ID exactly once, a text input as the query field, a live status
// region and a visible escape hint. It returns one message per violation.
func CheckContract(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, folio.Errorf(folio.EINVALID, "failed to parse HTML: %v", err)
	}

	var problems []string
	for _, id := range folio.DOMContractIDs {
		switch n := doc.Find("#" + id).Length(); n {
		case 1:
		case 0:
			problems = append(problems, fmt.Sprintf("missing #%s", id))
		default:
			problems = append(problems, fmt.Sprintf("#%s appears %d times", id, n))
		}
	}

	if input := doc.Find("#" + folio.DOMSearchInput); input.Length() > 0 && goquery.NodeName(input) != "input" {
		problems = append(problems, fmt.Sprintf("#%s is <%s>, want <input>", folio.DOMSearchInput, goquery.NodeName(input)))
	}

	if status := doc.Find("#" + folio.DOMStatus); status.Length() > 0 {
		role, _ := status.Attr("role")
		_, live := status.Attr("aria-live")
		if role != "status" && !live {
			problems = append(problems, fmt.Sprintf("#%s is not a live region", folio.DOMStatus))
		}
	}

	if hint := doc.Find("#" + folio.DOMEscapeHint); hint.Length() > 0 {
		if _, hidden := hint.Attr("hidden"); hidden || strings.TrimSpace(hint.Text()) == "" {
			problems = append(problems, fmt.Sprintf("#%s is not visible", folio.DOMEscapeHint))
		}
	}

	return problems, nil
}
