package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products       ProductRepository
	Customers      CustomerRepository
	Bills          BillRepository
	Movements      StockMovementRepository
	PurchaseOrders PurchaseOrderRepository
	Activities     ActivityRepository
}
