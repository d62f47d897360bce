package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"device-catalog/models"
)

// BrowseResult is one rendered catalog page together with the state
// needed to draw filters and the page picker around it.
type BrowseResult struct {
	Spec         models.QuerySpec
	Page         Page[models.Device]
	VisiblePages []int
	Brands       []string
	OS           []string
	Share        string
}

// Browse filters the snapshot with spec (search on model only) and cuts
// the page spec.Page from the matches.
func Browse(snap *models.Snapshot, spec models.QuerySpec, pageSize int) BrowseResult {
	spec = Canonical(spec)
	all := snap.Devices()
	matches := Filter(all, spec, MatchModel)
	page := Paginate(matches, spec.Page, pageSize)
	brands, oses := Facets(all)

	return BrowseResult{
		Spec:         spec,
		Page:         page,
		VisiblePages: VisiblePages(page.CurrentPage, page.TotalPages),
		Brands:       brands,
		OS:           oses,
		Share:        EncodeQuery(spec),
	}
}

// PrintBrowse renders a BrowseResult as a plain text table.
func PrintBrowse(r BrowseResult) {
	heading := color.New(color.FgYellow, color.Bold)
	current := color.New(color.FgCyan, color.Bold)
	thin := strings.Repeat("─", 78)

	heading.Printf("\n  Catalog: %d matching devices\n", r.Page.TotalItems)
	if r.Share != "" {
		fmt.Printf("  Share: ?%s\n", r.Share)
	}
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-5s %-12s %-26s %10s %6s %8s %-10s\n", "ID", "Brand", "Model", "Price", "RAM", "Storage", "OS")
	for _, d := range r.Page.Items {
		fmt.Printf("  %-5d %-12s %-26s %10s %6s %8s %-10s\n",
			d.ID, truncate(d.Brand, 12), truncate(d.Model, 26),
			formatPrice(d.Price), withUnit(d.RAM, "GB"), withUnit(d.Storage, "GB"), truncate(d.OS, 10))
	}
	if len(r.Page.Items) == 0 {
		fmt.Printf("  No devices on this page\n")
	}
	fmt.Printf("  %s\n", thin)

	var picker []string
	for _, p := range r.VisiblePages {
		label := fmt.Sprint(p)
		if p == r.Page.CurrentPage {
			label = current.Sprintf("[%d]", p)
		}
		picker = append(picker, label)
	}
	if r.Page.HasPrev() {
		picker = append([]string{"‹"}, picker...)
	}
	if r.Page.HasNext() {
		picker = append(picker, "›")
	}
	fmt.Printf("  Page %d of %d   %s\n\n", r.Page.CurrentPage, r.Page.TotalPages, strings.Join(picker, " "))
}

// PrintComparison renders the side-by-side table built by Compare.
func PrintComparison(devices []models.Device) {
	if len(devices) == 0 {
		fmt.Printf("  No devices selected for comparison\n\n")
		return
	}
	heading := color.New(color.FgYellow, color.Bold)
	colWidth := int(math.Max(18, float64(60/len(devices))))

	heading.Printf("\n  Comparing %d of %d devices\n", len(devices), models.MaxSelection)
	for _, sec := range Compare(devices) {
		heading.Printf("  %s\n", sec.Title)
		for _, row := range sec.Rows {
			fmt.Printf("    %-20s", row.Label)
			for _, v := range row.Values {
				fmt.Printf(" %-*s", colWidth, truncate(v, colWidth))
			}
			fmt.Println()
		}
	}
	fmt.Println()
}
