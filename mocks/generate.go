package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-screener/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-screener/internal/backtest/datasource DataSource
