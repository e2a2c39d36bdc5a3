package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func main() {
	var (
		hubBase = flag.String("hub", "", "Hub base URL (env: QD_HUB_ADDR)")
		token   = flag.String("token", "", "Bearer token (env: QD_TOKEN)")
		outFmt  = flag.String("output", "json", "Output format: json|table")
	)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx := cmdContext{
		HubBase: "http://localhost:8500",
		Output:  strings.TrimSpace(*outFmt),
	}
	if v := strings.TrimSpace(os.Getenv("QD_HUB_ADDR")); v != "" {
		ctx.HubBase = strings.TrimRight(v, "/")
	}
	if strings.TrimSpace(*hubBase) != "" {
		ctx.HubBase = strings.TrimRight(strings.TrimSpace(*hubBase), "/")
	}

	// Token resolution order:
	// 1) flag --token
	// 2) env QD_TOKEN
	// 3) credentials file
	if strings.TrimSpace(*token) != "" {
		ctx.Token = strings.TrimSpace(*token)
	} else if v := strings.TrimSpace(os.Getenv("QD_TOKEN")); v != "" {
		ctx.Token = v
	} else if cred, err := loadCredentials(); err == nil {
		ctx.Token = strings.TrimSpace(cred.Token)
	}

	if err := dispatch(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
