package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rail_ticket/internal/adapter/provider/gateway"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
)

const sessionCookie = "JSESSIONID"

// fakeGateway serves the /ktx routes and rejects every call after login that
// does not carry the session cookie.
func fakeGateway(t *testing.T, register func(r *gin.RouterGroup)) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	g := r.Group("/ktx")
	g.POST("/login", func(c *gin.Context) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": "BAD_REQUEST", "message": err.Error()})
			return
		}
		if body.Password != "secret" {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "wrong password"})
			return
		}
		c.SetCookie(sessionCookie, "abc", 0, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	authed := g.Group("", func(c *gin.Context) {
		if v, err := c.Cookie(sessionCookie); err != nil || v != "abc" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": "NO_SESSION", "message": "login required"})
			return
		}
		c.Next()
	})
	register(authed)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newLoggedInClient(t *testing.T, srv *httptest.Server) *gateway.Client {
	t.Helper()

	client, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL + "/", Timeout: time.Second}, domain.TrainKTX)
	require.NoError(t, err)

	ok, err := client.Login(context.Background(), "user", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	return client
}

func TestNewClient_Validation(t *testing.T) {
	_, err := gateway.NewClient(gateway.Config{BaseURL: "http://localhost"}, domain.TrainType("itx"))
	assert.Error(t, err)

	_, err = gateway.NewClient(gateway.Config{BaseURL: "not a url"}, domain.TrainKTX)
	assert.Error(t, err)

	client, err := gateway.NewClient(gateway.Config{BaseURL: "https://gateway.example.com"}, domain.TrainSRT)
	assert.NoError(t, err)
	assert.NotNil(t, client)
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := fakeGateway(t, func(*gin.RouterGroup) {})

	client, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL}, domain.TrainKTX)
	require.NoError(t, err)

	ok, err := client.Login(context.Background(), "user", "nope")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchTrain_SendsQueryAndCookie(t *testing.T) {
	var got map[string]any
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/trains/search", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&got))
			c.JSON(http.StatusOK, gin.H{"trains": []gin.H{{
				"train_no":               "101",
				"train_type":             "KTX-산천",
				"dep_date":               "20240115",
				"dep_time":               "080000",
				"arr_date":               "20240115",
				"arr_time":               "104500",
				"adult_charge":           "59,800",
				"seat_count":             12,
				"general_seat_available": true,
			}}})
		})
	})
	client := newLoggedInClient(t, srv)

	trains, err := client.SearchTrain(context.Background(), ports.TrainQuery{
		Departure:      "서울",
		Arrival:        "부산",
		Date:           "20240115",
		Time:           "080000",
		Passengers:     []domain.Passenger{{Type: domain.PassengerAdult, Count: 2}},
		IncludeSoldOut: true,
	})

	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "101", trains[0].TrainNo)
	assert.Equal(t, "59,800", trains[0].AdultCharge)
	assert.Equal(t, 12, trains[0].SeatCount)
	assert.True(t, trains[0].HasSeat())

	assert.Equal(t, "서울", got["dep"])
	assert.Equal(t, "20240115", got["date"])
	assert.Equal(t, true, got["include_no_seats"])
}

func TestSearchTrain_WithoutSessionIsProviderError(t *testing.T) {
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/trains/search", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{}) })
	})

	client, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL}, domain.TrainKTX)
	require.NoError(t, err)

	_, err = client.SearchTrain(context.Background(), ports.TrainQuery{})

	var perr *ports.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "NO_SESSION", perr.Code)
	assert.Equal(t, "login required", perr.Error())
}

func TestReserve_PostsOption(t *testing.T) {
	var got struct {
		Train struct {
			TrainNo string `json:"train_no"`
		} `json:"train"`
		Option string `json:"option"`
	}
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/reservations", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&got))
			c.JSON(http.StatusCreated, gin.H{"rsv_id": "R123456", "train_no": got.Train.TrainNo, "price": 59800})
		})
	})
	client := newLoggedInClient(t, srv)

	rsv, err := client.Reserve(context.Background(), ports.ProviderTrain{TrainNo: "101"}, nil, ports.OptionSpecialFirst)

	require.NoError(t, err)
	assert.Equal(t, "R123456", rsv.ID)
	assert.Equal(t, 59800, rsv.Price)
	assert.Equal(t, "101", got.Train.TrainNo)
	assert.Equal(t, "SPECIAL_FIRST", got.Option)
}

func TestReserve_SoldOutIsProviderError(t *testing.T) {
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/reservations", func(c *gin.Context) {
			c.JSON(http.StatusConflict, gin.H{"code": "SOLD_OUT", "message": "잔여석없음"})
		})
	})
	client := newLoggedInClient(t, srv)

	_, err := client.Reserve(context.Background(), ports.ProviderTrain{TrainNo: "101"}, nil, ports.OptionGeneralFirst)

	var perr *ports.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "잔여석없음", err.Error())
}

func TestReserve_BareServerErrorIsPlainError(t *testing.T) {
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/reservations", func(c *gin.Context) { c.Status(http.StatusBadGateway) })
	})
	client := newLoggedInClient(t, srv)

	_, err := client.Reserve(context.Background(), ports.ProviderTrain{}, nil, ports.OptionGeneralFirst)

	require.Error(t, err)
	var perr *ports.ProviderError
	assert.False(t, errors.As(err, &perr))
	assert.Contains(t, err.Error(), "502")
}

func TestReservations(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.GET("/reservations", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"reservations": []gin.H{
					{"rsv_id": "R1", "train_no": "101", "buy_limit": "2024-01-10T23:59:00+09:00"},
					{"rsv_id": "R2", "train_no": "103", "paid": true},
				}})
			})
		})
		client := newLoggedInClient(t, srv)

		list, err := client.Reservations(context.Background())

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "R1", list[0].ID)
		assert.Equal(t, 2024, list[0].BuyLimit.Year())
		assert.True(t, list[1].Paid)
	})

	t.Run("buy limit in provider layouts", func(t *testing.T) {
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.GET("/reservations", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"reservations": []gin.H{
					{"rsv_id": "R1", "buy_limit": "20250110235900"},
					{"rsv_id": "R2", "buy_limit": ""},
					{"rsv_id": "R3", "buy_limit": "내일 23시"},
					{"rsv_id": "R4", "buy_limit": "2025-01-10 23:59:00"},
				}})
			})
		})
		client := newLoggedInClient(t, srv)

		list, err := client.Reservations(context.Background())

		require.NoError(t, err)
		require.Len(t, list, 4)
		want := time.Date(2025, 1, 10, 23, 59, 0, 0, domain.KST)
		assert.True(t, want.Equal(list[0].BuyLimit))
		assert.True(t, list[1].BuyLimit.IsZero())
		assert.True(t, list[2].BuyLimit.IsZero())
		assert.Equal(t, "R3", list[2].ID)
		assert.True(t, want.Equal(list[3].BuyLimit))
	})

	t.Run("null", func(t *testing.T) {
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.GET("/reservations", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"reservations": nil})
			})
		})
		client := newLoggedInClient(t, srv)

		list, err := client.Reservations(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, list)
	})
}

func TestPay(t *testing.T) {
	card := domain.CreditCard{Number: "1234567890123456", Password: "12", ValidationNumber: "900101", Expire: "2612"}

	t.Run("approved", func(t *testing.T) {
		var got map[string]any
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.POST("/reservations/:id/payment", func(c *gin.Context) {
				require.Equal(t, "R123456", c.Param("id"))
				require.NoError(t, c.ShouldBindJSON(&got))
				c.JSON(http.StatusOK, gin.H{"success": true})
			})
		})
		client := newLoggedInClient(t, srv)

		ok, err := client.Pay(context.Background(), ports.ProviderReservation{ID: "R123456"}, card)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1234567890123456", got["number"])
		assert.Equal(t, "2612", got["expire"])
	})

	t.Run("declined with message", func(t *testing.T) {
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.POST("/reservations/:id/payment", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"success": false, "code": "CARD", "message": "카드 승인 거절"})
			})
		})
		client := newLoggedInClient(t, srv)

		ok, err := client.Pay(context.Background(), ports.ProviderReservation{ID: "R123456"}, card)

		assert.False(t, ok)
		var perr *ports.ProviderError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "CARD", perr.Code)
	})

	t.Run("declined silently", func(t *testing.T) {
		srv := fakeGateway(t, func(g *gin.RouterGroup) {
			g.POST("/reservations/:id/payment", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"success": false})
			})
		})
		client := newLoggedInClient(t, srv)

		ok, err := client.Pay(context.Background(), ports.ProviderReservation{ID: "R123456"}, card)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestLogout(t *testing.T) {
	called := false
	srv := fakeGateway(t, func(g *gin.RouterGroup) {
		g.POST("/logout", func(c *gin.Context) {
			called = true
			c.Status(http.StatusNoContent)
		})
	})
	client := newLoggedInClient(t, srv)

	assert.NoError(t, client.Logout(context.Background()))
	assert.True(t, called)
}

func TestCanceledContext(t *testing.T) {
	srv := fakeGateway(t, func(*gin.RouterGroup) {})

	client, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL}, domain.TrainKTX)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Login(ctx, "user", "secret")
	assert.ErrorIs(t, err, context.Canceled)
}
