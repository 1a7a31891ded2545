package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cafe-pos/cafe/internal/database"
)

const timeLayout = "2006-01-02 15:04:05"

// renderMenuItems prints menu rows as a tab-aligned table with a row count
// trailer.
func renderMenuItems(out io.Writer, items []database.MenuItem) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "itemName\ttype\tprice\tdescription\timageURL")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			it.ItemName, it.Type,
			database.NumericToDecimal(it.Price).StringFixed(2),
			it.Description, it.ImageURL)
	}
	w.Flush() //nolint:errcheck
	fmt.Fprintf(out, "Total Row(s): %d\n", len(items))
}

func renderOrders(out io.Writer, orders []database.Order) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "orderid\tlogin\tpaid\treceived\ttotal")
	for _, o := range orders {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\t%s\n",
			o.OrderID, o.Login, o.Paid,
			o.Received.Format(timeLayout),
			database.NumericToDecimal(o.Total).StringFixed(2))
	}
	w.Flush() //nolint:errcheck
	fmt.Fprintf(out, "Total Row(s): %d\n", len(orders))
}

func renderItemStatuses(out io.Writer, statuses []database.ItemStatus) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "orderid\titemName\tamount\tlastUpdated\tstatus\tcomments")
	for _, st := range statuses {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			st.OrderID, st.ItemName, st.Amount,
			st.LastUpdated.Format(timeLayout),
			st.Status, st.Comments)
	}
	w.Flush() //nolint:errcheck
	fmt.Fprintf(out, "Total Row(s): %d\n", len(statuses))
}
