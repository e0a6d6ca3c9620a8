package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

type AppServices struct {
	UserService   *UserService
	OrderService  *OrderService
	WalletService *WalletService
}

type FactoryArgs struct {
	JWTSecret          []byte
	Oracle             PriceOracle
	Index              PendingIndex
	Exchange           ExchangeClient
	MinSettlementValue decimal.Decimal
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, args.JWTSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork, OrderServiceArgs{
		Oracle:             args.Oracle,
		Index:              args.Index,
		Exchange:           args.Exchange,
		MinSettlementValue: args.MinSettlementValue,
	})
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	walletService, walletServiceErr := NewWalletService(unitOfWork)
	if walletServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", walletServiceErr.Error())
	}

	return &AppServices{
		UserService:   userService,
		OrderService:  orderService,
		WalletService: walletService,
	}, nil
}
