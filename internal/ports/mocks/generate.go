//go:generate mockgen -source=../validator.go         -destination=./mock_validator.go         -package=mocks
//go:generate mockgen -source=../stock.go             -destination=./mock_stock.go             -package=mocks
//go:generate mockgen -source=../rejection.go         -destination=./mock_rejection.go         -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../message_consumer.go  -destination=./mock_message_consumer.go  -package=mocks
//go:generate mockgen -source=../order_service.go     -destination=./mock_order_service.go     -package=mocks

package mocks
