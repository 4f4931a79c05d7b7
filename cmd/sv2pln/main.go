package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"

	"flightplan-service/internal/adapters/export"
	"flightplan-service/internal/adapters/source"
	"flightplan-service/internal/ports"
	"flightplan-service/internal/services"
)

// main drives the conversion pipeline from the command line: route text in,
// a simulator-ready .pln file out.
func main() {
	var (
		routeFile = flag.String("f", "", `read the route from this file instead of the arguments ("-" for stdin)`)
		outDir    = flag.String("o", ".", "directory the .pln file is written to")
		printDoc  = flag.Bool("print", false, "print the document to stdout instead of writing a file")
	)
	flag.Usage = usage
	flag.Parse()

	var src ports.RouteSource
	switch {
	case *routeFile != "":
		src = source.NewFileSource(*routeFile)
	case flag.NArg() > 0:
		src = source.NewStringSource(strings.Join(flag.Args(), " "))
	default:
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	routeText, err := src.ReadRoute(ctx)
	if err != nil {
		log.Fatalf("read route: %v", err)
	}

	// Advisory pass first: show the user everything that looks wrong
	// before committing to a conversion.
	if diags := services.Validate(routeText); len(diags) > 0 {
		fmt.Fprint(os.Stderr, services.FormatSummary(diags))
		os.Exit(1)
	}

	waypoints, err := services.Parse(routeText)
	if err != nil {
		log.Fatalf("parse route: %v", err)
	}

	doc := services.Generate(waypoints)

	if *printDoc {
		fmt.Println(doc.XML)
		return
	}

	path, err := export.NewFileWriter(*outDir).WritePlan(ctx, doc.Filename(), doc.XML)
	if err != nil {
		log.Fatalf("write plan: %v", err)
	}
	log.Infof("wrote %s (%s to %s, %d waypoints)", path, doc.DepartureID, doc.DestinationID, len(waypoints))
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] ROUTE TOKENS...\n\n", prog)
	fmt.Fprintf(os.Stderr, "Convert a route string into a simulator flight plan (.pln).\n\n")
	fmt.Fprintf(os.Stderr, "Example:\n  %s P34 403210N0772310W 402507N0773505W N68\n\nFlags:\n", prog)
	flag.PrintDefaults()
}
