package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/pawhaven/pawhaven/app/routes"
	"github.com/pawhaven/pawhaven/internal/server"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/payment"
)

// pawhaven serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// pawhaven route:list — print the registered routes. Builds the router
// over the in-memory store so no Mongo is needed.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := routes.New(store.NewMemory(), payment.NewStripe(""))

		type routeInfo struct{ method, path string }
		var infos []routeInfo
		err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			infos = append(infos, routeInfo{method, strings.TrimSuffix(route, "/")})
			return nil
		})
		if err != nil {
			return err
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].path != infos[j].path {
				return infos[i].path < infos[j].path
			}
			return infos[i].method < infos[j].method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		fmt.Fprintln(w, "------\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\n", ri.method, ri.path)
		}
		return w.Flush()
	},
}
