package main

import (
	"papapizza/internal/command"
	"papapizza/internal/handler"
	"papapizza/internal/repl"
)

func NewRouter(
	session *repl.Session,
	menuHandler *handler.MenuHandler,
	orderHandler *handler.OrderHandler,
	reportHandler *handler.ReportHandler,
) *command.Router {
	r := command.NewRouter()

	// Session commands
	r.Register("help", "Display this help message.", nil, session.Help)
	r.Register("h", "Alias for 'help'.", nil, session.Help)
	r.Register("quit", "Exit the program.", nil, session.Quit)
	r.Register("exit", "Alias for 'quit'.", nil, session.Exit)

	r.Register("menu", "Show the menu", nil, menuHandler.ShowMenu)

	// Order commands
	r.Register("order create", "Add an order",
		[]command.Param{{Name: "type", Optional: true}}, orderHandler.CreateOrder)
	r.Register("order remove", "Remove an order",
		[]command.Param{{Name: "index", Optional: true}}, orderHandler.RemoveOrder)
	r.Register("order list", "List all orders", nil, orderHandler.ListOrders)
	r.Register("order process", "Process an order", nil, orderHandler.ProcessOrder)
	r.Register("order switch", "Switch to a different order",
		[]command.Param{{Name: "index", Optional: true}}, orderHandler.SwitchOrder)

	// Item commands
	r.Register("order item add", "Add an item to the current order",
		[]command.Param{{Name: "itemName", Optional: true}, {Name: "quantity", Optional: true, Default: "1"}},
		orderHandler.AddItem)
	r.Register("order item remove", "Remove an item from the current order",
		[]command.Param{{Name: "itemName", Optional: true}, {Name: "quantity", Optional: true}},
		orderHandler.RemoveItem)

	// Reports
	r.Register("order summary", "Generate daily sales summary", nil, reportHandler.DailySummary)

	return r
}
