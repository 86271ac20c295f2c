package main

import (
	"encoding/json"
	"fmt"

	"github.com/taskgrid-io/taskgrid/internal/api"
)

func cliClient() *api.Client {
	c := api.NewClient(apiURL, apiToken)
	c.Client.Timeout = timeout
	return c
}

func outResult(v any, printer func(any)) {
	if outputJSON {
		b, _ := json.MarshalIndent(v, "", "  ")
		fmt.Println(string(b))
	} else {
		printer(v)
	}
}
