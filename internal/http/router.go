package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/salespilot/backoffice/docs"
	"github.com/salespilot/backoffice/internal/http/handlers"
	"github.com/salespilot/backoffice/internal/models"
)

// NewRouter assembles the full API surface. Reads are open, writes require a
// bearer token.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Credential endpoints carry a per-IP rate limit against brute force.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/{id}", handlers.GetProductByIDHandler)
	r.Get("/sales", handlers.GetSalesHandler)
	r.Get("/sales/{id}", handlers.GetSaleByIDHandler)
	r.Get("/expenses", handlers.GetExpensesHandler)
	r.Get("/invoices", handlers.GetInvoicesHandler)
	r.Get("/invoices/{id}", handlers.GetInvoiceByIDHandler)
	r.Get("/inventory", handlers.GetInventoryHandler)
	r.Get("/notifications", handlers.GetNotificationsHandler)
	r.Get("/customers", handlers.ListPeopleHandler(models.PersonKindCustomer))
	r.Get("/customers/{id}", handlers.GetPersonHandler(models.PersonKindCustomer))
	r.Get("/suppliers", handlers.ListPeopleHandler(models.PersonKindSupplier))
	r.Get("/suppliers/{id}", handlers.GetPersonHandler(models.PersonKindSupplier))
	r.Get("/staffs", handlers.ListPeopleHandler(models.PersonKindStaff))
	r.Get("/staffs/{id}", handlers.GetPersonHandler(models.PersonKindStaff))
	r.Get("/reports/latest", handlers.GetLatestReportHandler)
	r.Get("/reports/income-overview", handlers.IncomeOverviewHandler)
	r.Get("/reports/top-products", handlers.TopProductsHandler)
	r.Get("/reports/{date}", handlers.GetReportByDateHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/admin/users", handlers.RegisterAsAdminHandler)

		r.Post("/products", handlers.CreateProductHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Patch("/products/{id}", handlers.PatchProductFieldHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)

		r.Post("/sales", handlers.CreateSaleHandler)
		r.Put("/sales/{id}", handlers.UpdateSaleHandler)
		r.Delete("/sales/{id}", handlers.DeleteSaleHandler)

		r.Post("/expenses", handlers.CreateExpenseHandler)
		r.Delete("/expenses/{id}", handlers.DeleteExpenseHandler)

		r.Post("/customers", handlers.SavePersonHandler(models.PersonKindCustomer))
		r.Delete("/customers/{id}", handlers.DeletePersonHandler(models.PersonKindCustomer))
		r.Post("/suppliers", handlers.SavePersonHandler(models.PersonKindSupplier))
		r.Delete("/suppliers/{id}", handlers.DeletePersonHandler(models.PersonKindSupplier))
		r.Post("/staffs", handlers.SavePersonHandler(models.PersonKindStaff))
		r.Delete("/staffs/{id}", handlers.DeletePersonHandler(models.PersonKindStaff))

		r.Post("/invoices", handlers.CreateInvoiceHandler)
		r.Put("/invoices/{id}", handlers.UpdateInvoiceHandler)
		r.Delete("/invoices/{id}", handlers.DeleteInvoiceHandler)

		r.Post("/reports/compute", handlers.ComputeReportHandler)
		r.Post("/inventory/refresh", handlers.RefreshInventoryHandler)

		r.Post("/payments/orders", handlers.CreatePaymentOrderHandler)
		r.Post("/payments/orders/{id}/capture", handlers.CapturePaymentOrderHandler)
	})

	return r
}
