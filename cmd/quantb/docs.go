package main

//go:generate swag init -g cmd/quantb/main.go -o docs/quantb --instanceName quantb

// @title           Quantdesk Quant B API
// @version         0.1.0
// @description     Multi-asset portfolio simulation, quotes, and streaming.
// @host            localhost:8502
// @BasePath        /
// @schemes         http
