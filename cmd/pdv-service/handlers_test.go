package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pastelneto/pdv-backend/internal/cash"
	"github.com/pastelneto/pdv-backend/internal/notify"
	"github.com/pastelneto/pdv-backend/internal/order"
	"github.com/pastelneto/pdv-backend/internal/product"
	"github.com/pastelneto/pdv-backend/internal/table"
)

//
// ===== IN-MEMORY STUBS (implement the repository interfaces) =====
//

type stubOrderRepo struct {
	seq     []string
	orders  map[string]*order.Order
	lines   map[string][]order.Line
	creates int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*order.Order{}, lines: map[string][]order.Line{}}
}

func (s *stubOrderRepo) Create(ctx context.Context, o *order.Order, lines []order.Line) error {
	s.creates++
	cp := *o
	s.orders[o.ID] = &cp
	s.lines[o.ID] = lines
	s.seq = append(s.seq, o.ID)
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*order.Order, []order.Line, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, nil, order.ErrNotFound
	}
	cp := *o
	return &cp, s.lines[id], nil
}

func (s *stubOrderRepo) List(ctx context.Context, statuses []order.Status, oldestFirst bool) ([]order.Order, error) {
	match := func(st order.Status) bool {
		if len(statuses) == 0 {
			return true
		}
		for _, want := range statuses {
			if st == want {
				return true
			}
		}
		return false
	}
	var out []order.Order
	for _, id := range s.seq {
		if match(s.orders[id].Status) {
			out = append(out, *s.orders[id])
		}
	}
	if !oldestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *stubOrderRepo) GetLines(ctx context.Context, orderID string) ([]order.Line, error) {
	return s.lines[orderID], nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id string, from, to order.Status) error {
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return order.ErrIllegalTransition
	}
	o.Status = to
	return nil
}

type stubProductRepo struct {
	seq   []string
	items map[string]*product.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: map[string]*product.Product{}}
}

func (s *stubProductRepo) Create(ctx context.Context, p *product.Product) error {
	cp := *p
	s.items[p.ID] = &cp
	s.seq = append(s.seq, p.ID)
	return nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) ListActive(ctx context.Context) ([]product.Product, error) {
	var out []product.Product
	for _, id := range s.seq {
		if s.items[id].Active {
			out = append(out, *s.items[id])
		}
	}
	return out, nil
}

func (s *stubProductRepo) SetActive(ctx context.Context, id string, active bool) error {
	p, ok := s.items[id]
	if !ok {
		return product.ErrNotFound
	}
	p.Active = active
	return nil
}

type stubTableRepo struct {
	tables     map[string]*table.Table
	failOccupy bool
	occupied   []string
}

func newStubTableRepo() *stubTableRepo {
	return &stubTableRepo{tables: map[string]*table.Table{
		"T1": {ID: "T1", TableNumber: 1, Status: table.StatusAvailable},
		"T2": {ID: "T2", TableNumber: 2, Status: table.StatusAvailable},
	}}
}

func (s *stubTableRepo) List(ctx context.Context) ([]table.Table, error) {
	out := []table.Table{*s.tables["T1"], *s.tables["T2"]}
	return out, nil
}

func (s *stubTableRepo) UpdateStatus(ctx context.Context, id string, status table.Status) error {
	t, ok := s.tables[id]
	if !ok {
		return table.ErrNotFound
	}
	t.Status = status
	return nil
}

func (s *stubTableRepo) SetOccupied(ctx context.Context, id string) error {
	if s.failOccupy {
		return errors.New("tables down")
	}
	s.occupied = append(s.occupied, id)
	return s.UpdateStatus(ctx, id, table.StatusOccupied)
}

type stubCashRepo struct{ movements []cash.Movement }

func (s *stubCashRepo) ListToday(ctx context.Context) ([]cash.Movement, error) {
	out := make([]cash.Movement, len(s.movements))
	copy(out, s.movements)
	return out, nil
}

func (s *stubCashRepo) Insert(ctx context.Context, m *cash.Movement) error {
	s.movements = append(s.movements, *m)
	return nil
}

//
// ===== TEST ROUTER built exactly like main does =====
//

type testEnv struct {
	router   *gin.Engine
	orders   *stubOrderRepo
	products *stubProductRepo
	tables   *stubTableRepo
	cash     *stubCashRepo
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	orders := newStubOrderRepo()
	products := newStubProductRepo()
	tables := newStubTableRepo()
	cashRepo := &stubCashRepo{}
	feed := notify.NewMemoryFeed()
	cashSvc := cash.NewService(cashRepo, feed)
	d := &deps{
		products: products,
		orders:   orders,
		orderSvc: order.NewService(orders, tables, cashSvc, feed),
		tables:   tables,
		cashSvc:  cashSvc,
		feed:     feed,
	}
	return &testEnv{router: newRouter(d), orders: orders, products: products, tables: tables, cash: cashRepo}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

const cartJSON = `[
  {"product_id":"p1","name":"Pastel de Carne","price":"25.90","quantity":2},
  {"product_id":"p2","name":"Caldo de Cana","price":"6.90","quantity":1}
]`

//
// ===== ORDERS =====
//

func TestCreateOrder_SendToKitchen(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"table_id":"T1","order_type":"table","items":%s}`, cartJSON)

	w := env.do(t, http.MethodPost, "/orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got order.OrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Status != order.StatusReceived || got.Total != "58.70" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !strings.HasPrefix(got.OrderNumber, "PED") {
		t.Fatalf("kitchen orders must use the PED prefix, got %s", got.OrderNumber)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items=%d, want 2", len(got.Items))
	}
	// the table occupy is an independent follow-up write
	if len(env.tables.occupied) != 1 || env.tables.occupied[0] != "T1" {
		t.Fatalf("table not occupied: %+v", env.tables.occupied)
	}
}

func TestCreateOrder_EmptyCartRejectedWithoutBackendCall(t *testing.T) {
	env := newTestEnv()
	w := env.do(t, http.MethodPost, "/orders", `{"order_type":"takeaway","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d body=%s", w.Code, w.Body.String())
	}
	if env.orders.creates != 0 {
		t.Fatalf("no backend call may be issued for an empty cart")
	}
}

func TestCreateOrder_BadItems(t *testing.T) {
	env := newTestEnv()
	cases := []string{
		`{"order_type":"table","items":[{"product_id":"p1","name":"X","price":"1.00","quantity":0}]}`,
		`{"order_type":"table","items":[{"product_id":"p1","name":"X","price":"abc","quantity":1}]}`,
		`{"order_type":"table","items":[{"product_id":"","name":"X","price":"1.00","quantity":1}]}`,
		`{"order_type":"delivery","items":` + cartJSON + `}`,
	}
	for _, body := range cases {
		w := env.do(t, http.MethodPost, "/orders", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
	if env.orders.creates != 0 {
		t.Fatalf("invalid submissions must not reach the repo")
	}
}

func TestCreateOrder_TableFailureDoesNotRollBack(t *testing.T) {
	env := newTestEnv()
	env.tables.failOccupy = true
	body := fmt.Sprintf(`{"table_id":"T1","order_type":"table","items":%s}`, cartJSON)

	w := env.do(t, http.MethodPost, "/orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("order must survive a table status failure, got %d", w.Code)
	}
	if env.orders.creates != 1 {
		t.Fatalf("creates=%d, want 1", env.orders.creates)
	}
}

func TestListOrders_KitchenFilter(t *testing.T) {
	env := newTestEnv()
	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"order_type":"takeaway","items":%s}`, cartJSON)
		if w := env.do(t, http.MethodPost, "/orders", body); w.Code != http.StatusCreated {
			t.Fatalf("setup failed: %d", w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/orders?status=received,preparing,ready", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Items []order.OrderResponse `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items=%d, want 2", len(got.Items))
	}
	if got.Items[0].StatusLabel != "Recebido" || got.Items[0].NextAction != "Iniciar Preparo" {
		t.Fatalf("kitchen display fields missing: %+v", got.Items[0])
	}

	// invalid filter
	if w := env.do(t, http.MethodGet, "/orders?status=bogus", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad filter, got %d", w.Code)
	}
}

func TestAdvanceOrder_FullLifecycle(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"order_type":"takeaway","items":%s}`, cartJSON)
	w := env.do(t, http.MethodPost, "/orders", body)
	var created order.OrderResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	want := []order.Status{order.StatusPreparing, order.StatusReady, order.StatusDelivered}
	for _, expect := range want {
		w := env.do(t, http.MethodPost, "/orders/"+created.ID+"/advance", "")
		if w.Code != http.StatusOK {
			t.Fatalf("advance to %s: status=%d body=%s", expect, w.Code, w.Body.String())
		}
		var got order.OrderResponse
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.Status != expect {
			t.Fatalf("status=%s, want %s", got.Status, expect)
		}
	}

	// delivered is terminal
	if w := env.do(t, http.MethodPost, "/orders/"+created.ID+"/advance", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 past delivered, got %d", w.Code)
	}
	// and the stored status is untouched by the rejection
	if env.orders.orders[created.ID].Status != order.StatusDelivered {
		t.Fatalf("rejected transition mutated state")
	}

	if w := env.do(t, http.MethodPost, "/orders/nope/advance", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", w.Code)
	}
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"order_type":"takeaway","items":%s}`, cartJSON)
	w := env.do(t, http.MethodPost, "/orders", body)
	var created order.OrderResponse
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	if w := env.do(t, http.MethodPost, "/orders/"+created.ID+"/cancel", ""); w.Code != http.StatusOK {
		t.Fatalf("cancel: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/orders/"+created.ID+"/cancel", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a second cancel, got %d", w.Code)
	}
}

//
// ===== SALES =====
//

func TestFinalizeSale_Cash(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"payment_method":"cash","amount_paid":"100.00","items":%s}`, cartJSON)

	w := env.do(t, http.MethodPost, "/sales", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Order      order.OrderResponse `json:"order"`
		Settlement struct {
			Method     string `json:"method"`
			AmountPaid string `json:"amount_paid"`
			ChangeDue  string `json:"change_due"`
		} `json:"settlement"`
		ReceiptHTML string `json:"receipt_html"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Order.Status != order.StatusDelivered {
		t.Fatalf("sale orders are created delivered, got %s", got.Order.Status)
	}
	if !strings.HasPrefix(got.Order.OrderNumber, "VEN") {
		t.Fatalf("sales must use the VEN prefix, got %s", got.Order.OrderNumber)
	}
	if got.Settlement.ChangeDue != "41.30" {
		t.Fatalf("change=%s, want 41.30", got.Settlement.ChangeDue)
	}
	if !strings.Contains(got.ReceiptHTML, "Troco:") || !strings.Contains(got.ReceiptHTML, "COMPROVANTE DE VENDA") {
		t.Fatalf("receipt missing cash block")
	}
	// cash sales land in the ledger
	if len(env.cash.movements) != 1 || env.cash.movements[0].Type != cash.TypeSale {
		t.Fatalf("expected one sale movement, got %+v", env.cash.movements)
	}
}

func TestFinalizeSale_InsufficientCash(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"payment_method":"cash","amount_paid":"40.00","items":%s}`, cartJSON)
	w := env.do(t, http.MethodPost, "/sales", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}
	if env.orders.creates != 0 {
		t.Fatalf("an insufficient payment must block the sale before any write")
	}
}

func TestFinalizeSale_CardIgnoresTendered(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"payment_method":"card","amount_paid":"1.00","items":%s}`, cartJSON)
	w := env.do(t, http.MethodPost, "/sales", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Settlement struct {
			AmountPaid string `json:"amount_paid"`
			ChangeDue  string `json:"change_due"`
		} `json:"settlement"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Settlement.AmountPaid != "58.70" || got.Settlement.ChangeDue != "0.00" {
		t.Fatalf("card settlement wrong: %+v", got.Settlement)
	}
	if len(env.cash.movements) != 0 {
		t.Fatalf("card sales must not touch the cash ledger")
	}
}

func TestFinalizeSale_BadMethod(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"payment_method":"cheque","items":%s}`, cartJSON)
	if w := env.do(t, http.MethodPost, "/sales", body); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestOrderReceiptEndpoint(t *testing.T) {
	env := newTestEnv()
	body := fmt.Sprintf(`{"payment_method":"pix","items":%s}`, cartJSON)
	w := env.do(t, http.MethodPost, "/sales", body)
	var got struct {
		Order order.OrderResponse `json:"order"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)

	w = env.do(t, http.MethodGet, "/orders/"+got.Order.ID+"/receipt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type=%s", ct)
	}
	if !strings.Contains(w.Body.String(), "PIX") {
		t.Fatalf("receipt missing payment method")
	}

	if w := env.do(t, http.MethodGet, "/orders/nope/receipt", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

//
// ===== PRODUCTS =====
//

func TestCreateAndListProducts(t *testing.T) {
	env := newTestEnv()
	w := env.do(t, http.MethodPost, "/products", `{"name":"Pastel de Queijo","price":"23.90","category":"pasteis"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/products", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got struct {
		Items []product.Product `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Items) != 1 || !got.Items[0].Active || got.Items[0].Price != "23.90" {
		t.Fatalf("unexpected products: %+v", got.Items)
	}

	// deactivate hides it from the menu
	w = env.do(t, http.MethodPatch, "/products/"+got.Items[0].ID+"/active", `{"active":false}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
	w = env.do(t, http.MethodGet, "/products", "")
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Items) != 0 {
		t.Fatalf("inactive products must not be listed")
	}
}

func TestCreateProduct_Invalid(t *testing.T) {
	env := newTestEnv()
	cases := []string{
		`{"price":"1.00","category":"x"}`,
		`{"name":"X","category":"x","price":"-1.00"}`,
		`{"name":"X","category":"x","price":"abc"}`,
		`{"name":"X","price":"1.00"}`,
	}
	for _, body := range cases {
		if w := env.do(t, http.MethodPost, "/products", body); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

//
// ===== TABLES =====
//

func TestTables(t *testing.T) {
	env := newTestEnv()
	w := env.do(t, http.MethodGet, "/tables", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}

	// free a table manually
	if w := env.do(t, http.MethodPatch, "/tables/T1/status", `{"status":"available"}`); w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPatch, "/tables/T1/status", `{"status":"bogus"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if w := env.do(t, http.MethodPatch, "/tables/T9/status", `{"status":"reserved"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

//
// ===== CASH =====
//

func TestCashRegisterFlow(t *testing.T) {
	env := newTestEnv()

	if w := env.do(t, http.MethodPost, "/cash/open", ""); w.Code != http.StatusCreated {
		t.Fatalf("open: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/cash/open", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a second open, got %d", w.Code)
	}

	// a cash sale feeds the ledger
	saleBody := fmt.Sprintf(`{"payment_method":"cash","amount_paid":"60.00","items":%s}`, cartJSON)
	if w := env.do(t, http.MethodPost, "/sales", saleBody); w.Code != http.StatusCreated {
		t.Fatalf("sale: status=%d", w.Code)
	}

	if w := env.do(t, http.MethodPost, "/cash/withdrawals", `{"amount":"10.00","description":"sangria"}`); w.Code != http.StatusCreated {
		t.Fatalf("withdrawal: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := env.do(t, http.MethodPost, "/cash/withdrawals", `{"amount":"-5.00"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative withdrawal, got %d", w.Code)
	}

	w := env.do(t, http.MethodGet, "/cash/summary", "")
	var summary cash.Summary
	_ = json.Unmarshal(w.Body.Bytes(), &summary)
	if !summary.Open || summary.Balance != "48.70" {
		t.Fatalf("summary wrong: %+v", summary)
	}

	w = env.do(t, http.MethodPost, "/cash/close", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("close: status=%d body=%s", w.Code, w.Body.String())
	}
	var closed struct {
		Report string `json:"report"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &closed)
	if !strings.Contains(closed.Report, "FECHAMENTO DE CAIXA") || !strings.Contains(closed.Report, "TOTAL EM CAIXA: R$ 48.70") {
		t.Fatalf("close report wrong:\n%s", closed.Report)
	}

	if w := env.do(t, http.MethodPost, "/cash/close", ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a second close, got %d", w.Code)
	}
}
