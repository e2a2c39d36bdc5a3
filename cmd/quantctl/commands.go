package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

type cmdContext struct {
	HubBase string
	Token   string
	Output  string
}

func usage(w io.Writer) {
	fmt.Fprint(w, `quantctl <command> <subcommand> [flags]

Global Flags:
  --hub         Hub base URL (env: QD_HUB_ADDR)
  --token       Bearer token (env: QD_TOKEN)
  --output      json|table (default json)

Commands:
  auth     login/refresh/status
  apps     list
  reports  list/get/run
  keys     create
  health
`)
}

func dispatch(ctx cmdContext, args []string) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "auth":
		return authCmd(ctx, args[1:])
	case "apps":
		return appsCmd(ctx, args[1:])
	case "reports":
		return reportsCmd(ctx, args[1:])
	case "keys":
		return keysCmd(ctx, args[1:])
	case "health":
		return healthCmd(ctx)
	case "help", "-h", "--help":
		usage(os.Stdout)
		return nil
	default:
		usage(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func authCmd(ctx cmdContext, args []string) error {
	if len(args) == 0 {
		return errors.New("auth subcommand required: login|refresh|status")
	}
	switch args[0] {
	case "login":
		fs := flag.NewFlagSet("quantctl auth login", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		apiKey := fs.String("api-key", "", "API key")
		_ = fs.Parse(args[1:])
		if strings.TrimSpace(*apiKey) == "" {
			return errors.New("usage: quantctl auth login --api-key <key>")
		}

		c := &client{BaseURL: ctx.HubBase}
		req, err := c.newRequest("POST", "/api/v1/auth/login", map[string]any{
			"api_key": strings.TrimSpace(*apiKey),
		})
		if err != nil {
			return err
		}
		var resp tokenResponse
		if err := c.do(req, &resp); err != nil {
			return err
		}

		cred, _ := loadCredentials()
		cred.Token = resp.Token
		cred.ExpiresAt = resp.ExpiresAt
		_ = saveCredentials(cred)
		return writeJSON(os.Stdout, resp)

	case "refresh":
		c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
		req, err := c.newRequest("POST", "/api/v1/auth/refresh", map[string]any{})
		if err != nil {
			return err
		}
		var resp tokenResponse
		if err := c.do(req, &resp); err != nil {
			return err
		}
		cred, _ := loadCredentials()
		cred.Token = resp.Token
		cred.ExpiresAt = resp.ExpiresAt
		_ = saveCredentials(cred)
		return writeJSON(os.Stdout, resp)

	case "status":
		c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
		req, err := c.newRequest("GET", "/api/v1/auth/status", nil)
		if err != nil {
			return err
		}
		var resp any
		if err := c.do(req, &resp); err != nil {
			return err
		}
		return writeJSON(os.Stdout, resp)

	default:
		return fmt.Errorf("unknown auth subcommand: %s", args[0])
	}
}

type appStatus struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PublicURL   string `json:"public_url"`
	Status      string `json:"status"`
}

func appsCmd(ctx cmdContext, args []string) error {
	if len(args) > 0 && args[0] != "list" {
		return fmt.Errorf("unknown apps subcommand: %s", args[0])
	}
	c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
	req, err := c.newRequest("GET", "/api/v1/apps", nil)
	if err != nil {
		return err
	}
	var apps []appStatus
	if err := c.do(req, &apps); err != nil {
		return err
	}
	if ctx.Output == "table" {
		return writeAppsTable(os.Stdout, apps)
	}
	return writeJSON(os.Stdout, apps)
}

type reportList struct {
	Dates []string `json:"dates"`
}

func reportsCmd(ctx cmdContext, args []string) error {
	if len(args) == 0 {
		return errors.New("reports subcommand required: list|get|run")
	}
	switch args[0] {
	case "list":
		c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
		req, err := c.newRequest("GET", "/api/v1/reports", nil)
		if err != nil {
			return err
		}
		var resp reportList
		if err := c.do(req, &resp); err != nil {
			return err
		}
		if ctx.Output == "table" {
			return writeDatesTable(os.Stdout, resp.Dates)
		}
		return writeJSON(os.Stdout, resp)

	case "get":
		fs := flag.NewFlagSet("quantctl reports get", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		date := fs.String("date", "", "report date YYYY-MM-DD")
		_ = fs.Parse(args[1:])
		if strings.TrimSpace(*date) == "" {
			return errors.New("--date required")
		}
		c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
		req, err := c.newRequest("GET", "/api/v1/reports/"+url.PathEscape(strings.TrimSpace(*date)), nil)
		if err != nil {
			return err
		}
		var resp any
		if err := c.do(req, &resp); err != nil {
			return err
		}
		return writeJSON(os.Stdout, resp)

	case "run":
		c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
		req, err := c.newRequest("POST", "/api/v1/admin/reports/run", map[string]any{})
		if err != nil {
			return err
		}
		var resp any
		if err := c.do(req, &resp); err != nil {
			return err
		}
		return writeJSON(os.Stdout, resp)

	default:
		return fmt.Errorf("unknown reports subcommand: %s", args[0])
	}
}

func keysCmd(ctx cmdContext, args []string) error {
	if len(args) == 0 || args[0] != "create" {
		return errors.New("keys subcommand required: create")
	}
	fs := flag.NewFlagSet("quantctl keys create", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	role := fs.String("role", "viewer", "Role: viewer|admin")
	name := fs.String("name", "", "Key label")
	_ = fs.Parse(args[1:])

	c := &client{BaseURL: ctx.HubBase, Token: ctx.Token}
	req, err := c.newRequest("POST", "/api/v1/admin/keys", map[string]any{
		"role": strings.TrimSpace(*role),
		"name": strings.TrimSpace(*name),
	})
	if err != nil {
		return err
	}
	var resp any
	if err := c.do(req, &resp); err != nil {
		return err
	}
	return writeJSON(os.Stdout, resp)
}

func healthCmd(ctx cmdContext) error {
	c := &client{BaseURL: ctx.HubBase}
	req, err := c.newRequest("GET", "/healthz", nil)
	if err != nil {
		return err
	}
	var resp any
	if err := c.do(req, &resp); err != nil {
		return err
	}
	return writeJSON(os.Stdout, resp)
}
