package order

import (
	"shop/domain/order"
	"shop/domain/shared"
	"time"
)

// groupKey identifies one order inside the flat row stream.
//
// Grouping by order ID alone would be enough when the data is consistent;
// keying on the full order-level tuple mirrors what the flat projection
// actually promises: rows agreeing on all order-level fields belong to the
// same order. OrderDate is normalized to UTC so equal instants compare equal
// regardless of the driver's location.
type groupKey struct {
	OrderID    string
	MemberName string
	OrderDate  time.Time
	Status     order.Status
	Address    shared.Address
}

// GroupFlatRows regroups the fully flat projection into nested order views.
//
// Orders keep the first-appearance order of their rows, and each order's
// items keep row order. Pure in-memory transformation: the database work is
// already done by the time this runs.
func GroupFlatRows(rows []order.FlatRow) []OrderResponse {
	index := make(map[groupKey]int, len(rows))
	responses := make([]OrderResponse, 0, len(rows))

	for _, row := range rows {
		key := groupKey{
			OrderID:    row.OrderID,
			MemberName: row.MemberName,
			OrderDate:  row.OrderDate.UTC(),
			Status:     row.Status,
			Address:    row.Address,
		}

		i, ok := index[key]
		if !ok {
			i = len(responses)
			index[key] = i
			responses = append(responses, OrderResponse{
				OrderID:    row.OrderID,
				MemberName: row.MemberName,
				OrderDate:  row.OrderDate,
				Status:     row.Status,
				Address:    row.Address,
			})
		}
		responses[i].OrderItems = append(responses[i].OrderItems, OrderItemResponse{
			ItemName:   row.ItemName,
			OrderPrice: row.OrderPrice,
			Count:      row.Count,
		})
	}

	return responses
}
