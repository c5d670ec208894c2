package fakebackend

import (
	"encoding/base64"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// naiveLayout matches the server's isoformat() output for UTC datetimes.
const naiveLayout = "2006-01-02T15:04:05.000000"

func (b *Backend) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC().Format(naiveLayout)})
}

// ============================================================================
// Auth
// ============================================================================

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Provider string `json:"provider"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userJSON(u *user) gin.H {
	return gin.H{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"points":       u.Points,
		"orders_count": u.OrdersCount,
		"models_count": u.ModelsCount,
	}
}

func (b *Backend) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required", "type": "value_error.missing"}}})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.userByEmailLocked(req.Email) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}
	u := b.newUserLocked(req.Name, req.Email, req.Password)
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"token":   b.issueTokenLocked(u),
		"user":    userJSON(u),
	})
}

func (b *Backend) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required", "type": "value_error.missing"}}})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.userByEmailLocked(req.Email)
	if u == nil || u.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   b.issueTokenLocked(u),
		"user":    userJSON(u),
	})
}

func (b *Backend) profile(c *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[c.GetString("user_id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	resp := userJSON(u)
	resp["created_at"] = u.CreatedAt.Format(naiveLayout)
	c.JSON(http.StatusOK, resp)
}

// ============================================================================
// Calculator
// ============================================================================

type estimateRequest struct {
	MaterialType           string  `json:"material_type"`
	PrintTimeHours         float64 `json:"print_time_hours"`
	ElectricityCostPerHour float64 `json:"electricity_cost_per_hour"`
	ModelComplexity        string  `json:"model_complexity"`
	InfillPercentage       int     `json:"infill_percentage"`
	LayerHeight            float64 `json:"layer_height"`
}

var materialPricePerCM3 = map[string]float64{
	"PLA": 0.5, "ABS": 0.6, "PETG": 0.7, "TPU": 1.2, "Wood": 0.9, "Metal": 2.5,
}

var complexityMultiplier = map[string]float64{
	"simple": 1.0, "medium": 1.5, "complex": 2.0,
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func (b *Backend) estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "invalid request body"}}})
		return
	}
	price, ok := materialPricePerCM3[req.MaterialType]
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{
			"loc":  []string{"body", "material_type"},
			"msg":  "unsupported material",
			"type": "value_error",
		}}})
		return
	}
	mult, ok := complexityMultiplier[req.ModelComplexity]
	if !ok {
		mult = 1.0
	}

	electricity := req.PrintTimeHours * req.ElectricityCostPerHour
	volume := req.PrintTimeHours * 5 * float64(req.InfillPercentage) / 100 * ((0.3 - req.LayerHeight) + 1)
	material := volume * price
	subtotal := (electricity + material) * mult
	fee := subtotal * 0.3

	c.JSON(http.StatusOK, gin.H{
		"breakdown": gin.H{
			"electricity_cost":      round2(electricity),
			"material_cost":         round2(material),
			"service_fee":           round2(fee),
			"complexity_multiplier": mult,
			"material_volume_cm3":   round2(volume),
		},
		"total_cost_rub": round2(subtotal + fee),
		"estimated_completion": gin.H{
			"hours": req.PrintTimeHours,
			"days":  float64(int64(req.PrintTimeHours/24*10+0.5)) / 10,
		},
	})
}

// ============================================================================
// Catalog and models
// ============================================================================

func modelJSON(m *model) gin.H {
	return gin.H{
		"id":                   m.ID,
		"name":                 m.Name,
		"description":          m.Description,
		"category":             m.Category,
		"material_type":        m.MaterialType,
		"estimated_print_time": m.EstimatedPrintTime,
		"price":                m.Price,
		"owner_name":           m.OwnerName,
		"likes":                m.Likes,
		"downloads":            m.Downloads,
		"created_at":           m.CreatedAt.Format(naiveLayout),
	}
}

func (b *Backend) catalog(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 {
		limit = 20
	}
	category := c.Query("category")
	search := strings.ToLower(c.Query("search"))

	b.mu.Lock()
	defer b.mu.Unlock()
	b.queries = append(b.queries, c.Request.URL.RawQuery)

	if b.malformedCatalog {
		c.JSON(http.StatusOK, gin.H{"models": "oops"})
		return
	}

	matched := make([]*model, 0, len(b.models))
	for _, m := range b.models {
		if !m.IsPublic {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Description), search) {
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := make([]gin.H, 0, limit)
	for i := skip; i < len(matched) && i < skip+limit; i++ {
		page = append(page, modelJSON(matched[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"models":   page,
		"total":    len(matched),
		"page":     skip/limit + 1,
		"per_page": limit,
	})
}

func (b *Backend) modelDetails(c *gin.Context) {
	id := c.Param("id")

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.models {
		if m.ID != id {
			continue
		}
		resp := modelJSON(m)
		resp["file_data"] = m.FileData
		resp["file_format"] = m.FileFormat
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Model not found"})
}

func (b *Backend) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "file is required"}}})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot read file"})
		return
	}

	printTime, err := strconv.ParseFloat(c.PostForm("estimated_print_time"), 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "estimated_print_time must be a number"}}})
		return
	}
	var price *float64
	if raw := c.PostForm("price"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "price must be a number"}}})
			return
		}
		price = &p
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	owner := b.users[c.GetString("user_id")]
	m := &model{
		ID:                 uuid.New().String(),
		Name:               c.PostForm("name"),
		Description:        c.PostForm("description"),
		Category:           c.PostForm("category"),
		MaterialType:       c.PostForm("material_type"),
		EstimatedPrintTime: printTime,
		Price:              price,
		IsPublic:           c.PostForm("is_public") == "true",
		OwnerName:          owner.Name,
		FileData:           base64.StdEncoding.EncodeToString(data),
		FileFormat:         strings.TrimPrefix(strings.ToLower(fileExt(fh.Filename)), "."),
		CreatedAt:          b.tickLocked(),
	}
	b.models = append(b.models, m)
	owner.ModelsCount++
	owner.Points += 50

	c.JSON(http.StatusOK, gin.H{
		"message":       "Model uploaded successfully",
		"model_id":      m.ID,
		"points_earned": 50,
	})
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// ============================================================================
// Orders
// ============================================================================

type createOrderRequest struct {
	ModelID     string `json:"model_id" binding:"required"`
	Calculation struct {
		PrintTimeHours float64 `json:"print_time_hours"`
	} `json:"calculation"`
	TotalPrice      float64 `json:"total_price"`
	DeliveryAddress string  `json:"delivery_address"`
	Phone           string  `json:"phone"`
}

func (b *Backend) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	var target *model
	for _, m := range b.models {
		if m.ID == req.ModelID {
			target = m
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Model not found"})
		return
	}

	userID := c.GetString("user_id")
	now := b.tickLocked()
	o := &order{
		ID:                  uuid.New().String(),
		UserID:              userID,
		ModelName:           target.Name,
		TotalPrice:          req.TotalPrice,
		Status:              "pending",
		PaymentStatus:       "pending",
		CreatedAt:           now,
		EstimatedCompletion: now.Add(time.Duration((req.Calculation.PrintTimeHours + 24) * float64(time.Hour))),
	}
	b.orders = append(b.orders, o)

	points := int(req.TotalPrice / 100)
	if points < 10 {
		points = 10
	}
	if u, ok := b.users[userID]; ok {
		u.OrdersCount++
		u.Points += points
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Order created successfully",
		"order_id":      o.ID,
		"points_earned": points,
		"status":        o.Status,
	})
}

func (b *Backend) myOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]gin.H, 0)
	for i := len(b.orders) - 1; i >= 0; i-- {
		o := b.orders[i]
		if o.UserID != userID {
			continue
		}
		items = append(items, gin.H{
			"id":                   o.ID,
			"model_name":           o.ModelName,
			"total_price":          o.TotalPrice,
			"status":               o.Status,
			"payment_status":       o.PaymentStatus,
			"created_at":           o.CreatedAt.Format(naiveLayout),
			"estimated_completion": o.EstimatedCompletion.Format(naiveLayout),
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": items})
}
