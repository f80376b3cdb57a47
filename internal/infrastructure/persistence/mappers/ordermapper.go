package mappers

import (
	"fmt"

	"github.com/bookstore-vn/bookstore/internal/domain/order"
	vo "github.com/bookstore-vn/bookstore/internal/domain/order/valueobjects"
	"github.com/bookstore-vn/bookstore/internal/infrastructure/persistence/models"
)

func OrderToModel(o *order.Order) *models.OrderModel {
	customer := o.Customer()
	model := &models.OrderModel{
		ID:              o.ID(),
		UserID:          o.UserID(),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerMobile:  customer.MobileNumber,
		CustomerAddress: customer.Address,
		TotalAmount:     o.TotalAmount().Amount(),
		Currency:        o.TotalAmount().Currency(),
		Status:          o.Status().String(),
		IsPaid:          o.IsPaid(),
		PaymentMethod:   o.PaymentMethod(),
		FailureCode:     o.FailureCode(),
		PaidAt:          o.PaidAt(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	if p := o.Payment(); p != nil {
		model.BankCode = p.BankCode
		model.TransactionNo = p.TransactionNo
		model.PayDate = p.PayDate
	}

	if len(o.Metadata()) > 0 {
		model.Metadata = o.Metadata()
	}

	items := o.Items()
	model.Items = make([]models.OrderItemModel, len(items))
	for i, item := range items {
		model.Items[i] = models.OrderItemModel{
			OrderID:   o.ID(),
			BookID:    item.BookID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
		}
	}

	return model
}

func OrderToDomain(model *models.OrderModel) (*order.Order, error) {
	status := vo.OrderStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid order status: %s", model.Status)
	}

	var payment *vo.PaymentInfo
	if model.IsPaid {
		payment = &vo.PaymentInfo{
			BankCode:      model.BankCode,
			TransactionNo: model.TransactionNo,
			PayDate:       model.PayDate,
		}
	}

	items := make([]order.Item, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.Item{
			BookID:    item.BookID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: vo.NewMoney(item.UnitPrice, model.Currency),
		}
	}

	return order.ReconstructOrder(order.OrderReconstructParams{
		ID:     model.ID,
		UserID: model.UserID,
		Customer: order.Customer{
			Name:         model.CustomerName,
			Email:        model.CustomerEmail,
			MobileNumber: model.CustomerMobile,
			Address:      model.CustomerAddress,
		},
		Items:         items,
		TotalAmount:   vo.NewMoney(model.TotalAmount, model.Currency),
		Status:        status,
		IsPaid:        model.IsPaid,
		PaymentMethod: model.PaymentMethod,
		Payment:       payment,
		FailureCode:   model.FailureCode,
		PaidAt:        model.PaidAt,
		Metadata:      model.Metadata,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}), nil
}
