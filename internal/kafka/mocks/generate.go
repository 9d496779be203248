//go:generate mockgen -source=../consumer.go            -destination=./mock_consumer.go  -package=mocks
//go:generate mockgen -source=../rejection_publisher.go -destination=./mock_writer.go    -package=mocks

package mocks
