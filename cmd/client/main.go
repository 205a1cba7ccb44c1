package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-gene-consent/internal/client"
	"github.com/MKhiriev/go-gene-consent/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cli := client.New(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	if err := cli.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
