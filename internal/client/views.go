package client

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/storely/store-rating-service/internal/services"
)

// DashboardView names the role-specific view the dashboard command renders.
type DashboardView int

const (
	ViewMyRatings DashboardView = iota
	ViewOwnerStores
	ViewPlatformStats
)

// ResolveDashboardView picks the dashboard for a role. The role enum is
// closed, so anything unrecognized falls back to the plain user view.
func ResolveDashboardView(role string) DashboardView {
	switch role {
	case "OWNER":
		return ViewOwnerStores
	case "ADMIN":
		return ViewPlatformStats
	default:
		return ViewMyRatings
	}
}

func RenderStoreList(w io.Writer, resp *services.StoreListResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tRATING\tVOTES")
	for _, store := range resp.Stores {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\n",
			store.ID, store.Name, store.Address, store.AverageRating, store.TotalRatings)
	}
	tw.Flush()
	fmt.Fprintf(w, "page %d/%d, %d stores total\n",
		resp.Pagination.Page, resp.Pagination.TotalPages, resp.Pagination.Total)
}

func RenderStoreDetail(w io.Writer, store *services.StoreDetailResponse) {
	fmt.Fprintf(w, "%s (#%d)\n", store.Name, store.ID)
	fmt.Fprintf(w, "  address: %s\n", store.Address)
	fmt.Fprintf(w, "  rating:  %.2f (%d votes)\n", store.AverageRating, store.TotalRatings)
	if store.UserRating != nil {
		fmt.Fprintf(w, "  yours:   %d\n", store.UserRating.Rating)
	}
}

func RenderMyRatings(w io.Writer, ratings []services.RatingResponse) {
	if len(ratings) == 0 {
		fmt.Fprintln(w, "no ratings yet")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTORE\tRATING\tUPDATED")
	for _, r := range ratings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			r.ID, r.Store.Name, r.Rating, r.UpdatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func RenderOwnerDashboard(w io.Writer, dash *services.OwnerDashboardResponse) {
	fmt.Fprintf(w, "%d stores, %d ratings total\n", dash.TotalStores, dash.TotalRatings)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING\tVOTES")
	for _, store := range dash.Stores {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\n",
			store.ID, store.Name, store.AverageRating, store.TotalRatings)
	}
	tw.Flush()
}

func RenderPlatformStats(w io.Writer, stats *services.DashboardStatsResponse) {
	fmt.Fprintf(w, "users:   %d (admin %d, user %d, owner %d)\n",
		stats.TotalUsers, stats.UsersByRole.Admin, stats.UsersByRole.User, stats.UsersByRole.Owner)
	fmt.Fprintf(w, "stores:  %d\n", stats.TotalStores)
	fmt.Fprintf(w, "ratings: %d\n", stats.TotalRatings)
}
