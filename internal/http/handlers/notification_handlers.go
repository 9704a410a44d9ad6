package handlers

import "net/http"

// GetNotificationsHandler godoc
// @Summary Inventory and revenue threshold alerts
// @Description Evaluates the configured thresholds on demand; nothing is stored
// @Tags notifications
// @Produce json
// @Success 200 {object} report.Notifications
// @Failure 500 {string} string "Internal error"
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	n, err := reportService.GetNotifications(r.Context())
	if err != nil {
		http.Error(w, "could not evaluate notifications", http.StatusInternalServerError)
		return
	}
	for i := range n.RevenueAlerts {
		n.RevenueAlerts[i].Revenue = n.RevenueAlerts[i].Revenue.Round(2)
	}
	logEncodeError(writeJSON(w, http.StatusOK, n))
}

// GetInventoryHandler godoc
// @Summary List all inventory snapshots
// @Tags inventory
// @Produce json
// @Success 200 {array} models.InventorySnapshot
// @Failure 500 {string} string "Internal error"
// @Router /inventory [get]
func GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	snaps, err := invRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "could not fetch inventory", http.StatusInternalServerError)
		return
	}
	logEncodeError(writeJSON(w, http.StatusOK, snaps))
}
