package pgrepo

import (
	"context"

	"github.com/abysswarrior/aban-tether-interview/internal/domain"
	"github.com/abysswarrior/aban-tether-interview/internal/repository/repoargs"
	"github.com/abysswarrior/aban-tether-interview/pkg/uow"
)

const orderColumns = "id, created_at, updated_at, user_id, coin_symbol, amount, status"

type OrderRepository struct {
	conn uow.DBTX
}

func NewOrderRepository(conn uow.DBTX) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// CreateOrder создает заявку в статусе pending.
func (o *OrderRepository) CreateOrder(ctx context.Context, args repoargs.OrderCreate) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx,
		"INSERT INTO orders (user_id, coin_symbol, amount, status) VALUES ($1, $2, $3, $4) RETURNING "+orderColumns,
		args.UserID, args.CoinSymbol, args.Amount, domain.OrderStatusPending,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for user `%d` coin `%s`", args.UserID, args.CoinSymbol)
	}
	return order, nil
}

func (o *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := o.conn.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1",
		id,
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by id `%d`", id)
	}
	return order, nil
}

// GetByUserID возвращает заявки юзера отсортированные по дате создания по убыванию.
func (o *OrderRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, convertErr(err, "getting orders by userID `%d`", userID)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning order of user `%d`", userID)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting orders by userID `%d`", userID)
	}
	return orders, nil
}

// GetByStatusAndCoin возвращает заявки по монете в указанном статусе, по возрастанию даты создания.
// Используется для инспекции и внешней сверки.
func (o *OrderRepository) GetByStatusAndCoin(
	ctx context.Context,
	coinSymbol string,
	status domain.OrderStatusType,
) ([]domain.Order, error) {
	rows, err := o.conn.Query(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE coin_symbol = $1 AND status = $2 ORDER BY created_at ASC",
		coinSymbol, status,
	)
	if err != nil {
		return nil, convertErr(err, "getting `%s` orders for coin `%s`", status, coinSymbol)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "scanning `%s` order for coin `%s`", status, coinSymbol)
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting `%s` orders for coin `%s`", status, coinSymbol)
	}
	return orders, nil
}

// BatchUpdateStatus атомарно переводит заявки с указанными id в статус status.
// Батчи с непересекающимися наборами id могут выполняться конкурентно.
func (o *OrderRepository) BatchUpdateStatus(
	ctx context.Context,
	orderIDs []int64,
	status domain.OrderStatusType,
) error {
	if len(orderIDs) == 0 {
		return nil
	}
	_, err := o.conn.Exec(ctx,
		"UPDATE orders SET status = $1, updated_at = now() WHERE id = ANY($2)",
		status, orderIDs,
	)
	if err != nil {
		return convertErr(err, "updating status to `%s` for orders `%v`", status, orderIDs)
	}
	return nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.UserID,
		&order.CoinSymbol,
		&order.Amount,
		&order.Status,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
