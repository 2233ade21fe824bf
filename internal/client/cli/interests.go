package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/onboard/internal/client/interests"
	"github.com/dmitrijs2005/onboard/internal/client/router"
)

// loadSelection makes sure the selection belongs to the current user,
// reloading it when the user changed.
func (a *App) loadSelection(ctx context.Context) (*interests.Selection, error) {
	snap := a.manager.Snapshot()
	if !snap.IsAuthenticated() {
		return nil, errors.New("not authenticated")
	}
	if a.selection != nil && a.selection.UserID() == snap.Session.UserID {
		return a.selection, nil
	}
	sel, err := interests.LoadSelection(ctx, a.store, snap.Session.UserID)
	if err != nil {
		return nil, err
	}
	a.selection = sel
	return sel, nil
}

// guardInterests re-applies the route guard. Losing the session while on
// the interests screen moves the user away from it.
func (a *App) guardInterests(ctx context.Context) bool {
	if a.route != router.Interests {
		printlnFn("Interests are shown on 'go /interests'.")
		return false
	}
	if d := router.Guard(a.manager.Snapshot().State); d.Outcome == router.Redirect {
		_ = a.Navigate(ctx, string(d.Target))
		return false
	}
	return true
}

// List prints the current page of the catalogue with check marks and the
// page selector.
func (a *App) List(ctx context.Context) error {
	if !a.guardInterests(ctx) {
		return nil
	}
	sel, err := a.loadSelection(ctx)
	if err != nil {
		a.log.Error(ctx, "load interests failed", "error", err.Error())
		printlnFn(errorStyle.Render("Could not load your saved interests"))
		return err
	}

	total := a.catalogue.TotalPages()
	a.page = interests.ClampPage(a.page, total)

	printlnFn(titleStyle.Render("Please mark your interests!"))
	printlnFn("We will keep you notified.")
	printlnFn(fmt.Sprintf("My saved interests! (%d selected)", sel.Len()))

	for i, it := range a.catalogue.Page(a.page) {
		mark := " "
		if sel.Has(it.ID) {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("%2d. [%s] %s %s", i+1, mark, it.Name, hintStyle.Render("("+string(it.Category)+")")))
	}

	printlnFn(pageSelector(a.page, total))
	return nil
}

func pageSelector(current, total int) string {
	labels := interests.PageLabels(current, total, interests.Delta)
	parts := make([]string, 0, len(labels)+2)
	parts = append(parts, "<")
	for _, l := range labels {
		if l.Current {
			parts = append(parts, "["+l.String()+"]")
			continue
		}
		parts = append(parts, l.String())
	}
	parts = append(parts, ">")
	return strings.Join(parts, " ")
}

// Toggle flips the interest in row (1-based, on the current page) and
// persists the selection at once.
func (a *App) Toggle(ctx context.Context, row string) error {
	if !a.guardInterests(ctx) {
		return nil
	}
	items := a.catalogue.Page(a.page)
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > len(items) {
		printlnFn(fmt.Sprintf("Pick a row between 1 and %d.", len(items)))
		return nil
	}

	sel, err := a.loadSelection(ctx)
	if err != nil {
		printlnFn(errorStyle.Render("Could not load your saved interests"))
		return err
	}

	it := items[n-1]
	on, err := sel.Toggle(ctx, it.ID)
	if err != nil {
		a.log.Error(ctx, "save interests failed", "error", err.Error())
		printlnFn(errorStyle.Render("Could not save your interests"))
		return err
	}
	if on {
		printlnFn("Selected:", it.Name)
	} else {
		printlnFn("Removed:", it.Name)
	}
	return nil
}

// Page moves to "next", "prev" or a page number. Moves past either end are
// ignored.
func (a *App) Page(ctx context.Context, to string) error {
	if !a.guardInterests(ctx) {
		return nil
	}
	total := a.catalogue.TotalPages()

	target := a.page
	switch to {
	case "next":
		target++
	case "prev":
		target--
	default:
		n, err := strconv.Atoi(to)
		if err != nil {
			printlnFn("Usage: page <n>")
			return nil
		}
		target = n
	}
	if target < 1 || target > total {
		printlnFn(fmt.Sprintf("No page %d (1-%d).", target, total))
		return nil
	}

	a.page = target
	return a.List(ctx)
}
