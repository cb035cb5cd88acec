package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/autoextract"
)

// Run executes the runs list command.
func (c *RunsListCmd) Run(deps *Dependencies) error {
	filter := autoextract.ExtractionFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.SourceURL = &c.Source
	}

	extractions, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autoextract.ErrorMessage(err))
		return err
	}

	if len(extractions) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved runs. Use 'autoextract extract --save' to create one.")
		return nil
	}

	for _, e := range extractions {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d items  %s\n",
			e.ID, e.CreatedAt.Format(time.RFC3339), e.ItemCount, e.SourceURL)
	}

	return nil
}

// Run executes the runs show command.
func (c *RunsShowCmd) Run(deps *Dependencies) error {
	extraction, err := deps.Extractions.FindExtractionByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autoextract.ErrorMessage(err))
		return err
	}

	source := extraction.SourceURL
	if source == "" {
		source = extraction.ID
	}
	fmt.Fprintf(deps.Stdout, "Items from %s (%d total):\n\n", source, extraction.ItemCount)
	for i, item := range extraction.Items {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, item.Title, item.Href)
	}

	return nil
}

// Run executes the runs delete command.
func (c *RunsDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return autoextract.Errorf(autoextract.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Extractions.DeleteExtraction(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", autoextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %q\n", c.ID)
	return nil
}
