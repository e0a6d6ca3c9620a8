package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abysswarrior/aban-tether-interview/internal/batch"
	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

const defaultExchangeTimeout = 10 * time.Second

type OrderService struct {
	uow                uow.UOW
	orderRepo          OrderRepository
	oracle             PriceOracle
	index              PendingIndex
	exchange           ExchangeClient
	minSettlementValue decimal.Decimal
}

type OrderServiceArgs struct {
	Oracle             PriceOracle
	Index              PendingIndex
	Exchange           ExchangeClient
	MinSettlementValue decimal.Decimal
}

func NewOrderService(u uow.UOW, args OrderServiceArgs) (*OrderService, error) {
	orderRepo, err := uow.GetRepositoryAs[OrderRepository](u, uow.RepositoryName(repoargs.OrderRepoName))
	if err != nil {
		return nil, err
	}
	return &OrderService{
		uow:                u,
		orderRepo:          orderRepo,
		oracle:             args.Oracle,
		index:              args.Index,
		exchange:           args.Exchange,
		minSettlementValue: args.MinSettlementValue,
	}, nil
}

// Create принимает заявку юзера на покупку amount монет coinSymbol.
//
// Алгоритм работы:
//  1. Валидация: amount > 0, монета известна оракулу. Ошибки валидации возвращаются
//     до каких-либо изменений состояния.
//  2. Транзакция: списание price*amount с кошелька (строка кошелька блокируется)
//     и вставка заявки в статусе pending. Либо оба изменения, либо ни одного;
//     domain.ErrNotEnoughBalance откатывает всё.
//  3. Заявка попадает в индекс ожидающих по своей монете.
//  4. Попытка сеттлмента по монете. Ошибка биржи возвращается вызывающему,
//     при этом заявки батча уже помечены failed, а списание не отменяется.
//
// Возвращаемая заявка отражает статус после шага 4: pending если порог не
// достигнут, completed/failed если сеттлмент случился в этом же вызове.
func (o *OrderService) Create(
	ctx context.Context,
	userID int64,
	coinSymbol string,
	amount decimal.Decimal,
) (*domain.Order, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("creating order: %w", domain.ErrInvalidAmount)
	}

	price, priceErr := o.oracle.PriceOf(coinSymbol)
	if priceErr != nil {
		return nil, fmt.Errorf("creating order: %w", priceErr)
	}

	totalValue := price.Mul(amount)

	var order *domain.Order
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		walletRepo, walletRepoErr := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if walletRepoErr != nil {
			return walletRepoErr //nolint:wrapcheck
		}
		if _, debitErr := walletRepo.DebitBalance(c, userID, totalValue); debitErr != nil {
			return debitErr //nolint:wrapcheck
		}

		orderRepo, orderRepoErr := uow.GetAs[OrderRepository](tx, uow.RepositoryName(repoargs.OrderRepoName))
		if orderRepoErr != nil {
			return orderRepoErr //nolint:wrapcheck
		}
		var createErr error
		order, createErr = orderRepo.CreateOrder(c, repoargs.OrderCreate{
			UserID:     userID,
			CoinSymbol: coinSymbol,
			Amount:     amount,
		})
		return createErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}

	o.index.Add(coinSymbol, batch.Entry{
		OrderID:    order.ID,
		Amount:     order.Amount,
		AdmittedAt: order.CreatedAt,
	})

	settleErr := o.trySettle(ctx, coinSymbol, price)

	// перечитываем заявку: если сеттлмент случился в этом вызове, её статус уже изменен.
	if fresh, findErr := o.orderRepo.FindByID(ctx, order.ID); findErr == nil {
		order = fresh
	}

	if settleErr != nil {
		return order, settleErr
	}
	return order, nil
}

// TrySettle оценивает необходимость сеттлмента по монете и выполняет его если
// суммарная стоимость ожидающих заявок достигла порога. Безопасен при конкурентных
// вызовах: каждая запись индекса попадает ровно в один батч.
func (o *OrderService) TrySettle(ctx context.Context, coinSymbol string) error {
	price, priceErr := o.oracle.PriceOf(coinSymbol)
	if priceErr != nil {
		return fmt.Errorf("settling coin `%s`: %w", coinSymbol, priceErr)
	}
	return o.trySettle(ctx, coinSymbol, price)
}

// trySettle выполняет одну попытку сеттлмента.
//
// Алгоритм работы:
//  1. Если стоимость ожидающих заявок (PeekTotal * цена) ниже порога - выходим.
//  2. Атомарно забираем снапшот индекса. Пустой снапшот означает проигранную
//     гонку с конкурентным сеттлментом - выходим без действий.
//  3. Покупаем суммарное количество на бирже. Индекс к этому моменту уже очищен,
//     поэтому долгий вызов биржи не задерживает другие допуски.
//  4. Успех - заявки батча помечаются completed, ошибка - failed и наружу уходит
//     *domain.ExchangeError со списком задетых заявок.
//
// Вызов биржи и обновление статусов не атомарны относительно падения процесса:
// после успешной покупки, но до пометки completed, заявки останутся pending.
// Такие случаи закрывает внешняя сверка по подтверждениям сделок.
func (o *OrderService) trySettle(ctx context.Context, coinSymbol string, price decimal.Decimal) error {
	pendingValue := o.index.PeekTotal(coinSymbol).Mul(price)
	if pendingValue.LessThan(o.minSettlementValue) {
		return nil
	}

	entries := o.index.SnapshotAndDrain(coinSymbol)
	if len(entries) == 0 {
		return nil
	}

	totalAmount := decimal.Zero
	orderIDs := make([]int64, len(entries))
	for i, entry := range entries {
		totalAmount = totalAmount.Add(entry.Amount)
		orderIDs[i] = entry.OrderID
	}

	buyCtx, cancel := context.WithTimeout(ctx, defaultExchangeTimeout)
	defer cancel()

	if buyErr := o.exchange.Buy(buyCtx, coinSymbol, totalAmount); buyErr != nil {
		if markErr := o.orderRepo.BatchUpdateStatus(ctx, orderIDs, domain.OrderStatusFailed); markErr != nil {
			return fmt.Errorf("marking batch failed after %s: %w", buyErr.Error(), markErr)
		}
		return domain.NewExchangeError(coinSymbol, orderIDs, buyErr)
	}

	if markErr := o.orderRepo.BatchUpdateStatus(ctx, orderIDs, domain.OrderStatusCompleted); markErr != nil {
		return fmt.Errorf("marking batch completed: %w", markErr)
	}
	return nil
}

// FindByID возвращает заявку по id или domain.ErrRecordNotFound.
func (o *OrderService) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := o.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return order, nil
}

// GetByUserID возвращает заявки юзера отсортированные по дате создания по убыванию.
func (o *OrderService) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := o.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return orders, nil
}
