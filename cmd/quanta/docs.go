package main

//go:generate swag init -g cmd/quanta/main.go -o docs/quanta --instanceName quanta

// @title           Quantdesk Quant A API
// @version         0.1.0
// @description     Single-asset history, strategy backtests, and run records.
// @host            localhost:8501
// @BasePath        /
// @schemes         http
