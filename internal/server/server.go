package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/cardhouse/dealerschoice/internal/game"
	"github.com/cardhouse/dealerschoice/internal/history"
)

// Server hosts the configured tables behind a WebSocket endpoint
type Server struct {
	cfg      *Config
	upgrader websocket.Upgrader

	tables      map[string]*Table
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection

	store  *history.Store
	clock  quartz.Clock
	logger *log.Logger
	mu     sync.RWMutex
}

// New builds a server and its tables from config
func New(cfg *Config, rng *rand.Rand, clock quartz.Clock, logger *log.Logger) (*Server, error) {
	var store *history.Store
	if cfg.Server.HistoryDB != "" {
		var err error
		store, err = history.Open(cfg.Server.HistoryDB)
		if err != nil {
			return nil, err
		}
	}

	s := &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		tables:      make(map[string]*Table),
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		store:       store,
		clock:       clock,
		logger:      logger.WithPrefix("server"),
	}

	timeout := time.Duration(cfg.Server.ActionTimeout) * time.Second
	for _, tc := range cfg.Tables {
		table, err := NewTable(tc, rng, clock, timeout, store, logger)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		s.tables[tc.Name] = table
	}
	return s, nil
}

// Addr is the listen address from config
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port)
}

// Start runs the table actors, the connection registry and the HTTP
// listener until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, table := range s.tables {
		g.Go(func() error {
			err := table.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		s.runRegistry(ctx)
		return nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	httpServer := &http.Server{Addr: s.Addr(), Handler: mux}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		if s.store != nil {
			_ = s.store.Close()
		}
		return nil
	})

	g.Go(func() error {
		s.logger.Info("listening", "addr", s.Addr())
		err := httpServer.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})

	return g.Wait()
}

func (s *Server) runRegistry(ctx context.Context) {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			total := len(s.connections)
			s.mu.Unlock()
			s.logger.Info("client connected", "total", total)

		case conn := <-s.unregister:
			s.mu.Lock()
			delete(s.connections, conn)
			total := len(s.connections)
			s.mu.Unlock()
			if tableID, _ := conn.Table(); tableID != "" {
				if table, ok := s.tables[tableID]; ok {
					table.Leave(conn.PlayerID())
				}
			}
			_ = conn.Close()
			s.logger.Info("client disconnected", "total", total)

		case <-ctx.Done():
			s.mu.Lock()
			for conn := range s.connections {
				_ = conn.Close()
			}
			s.mu.Unlock()
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	conn := NewConnection(ws, s, s.logger)
	s.register <- conn
	conn.Start()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleMessage dispatches one inbound client message
func (s *Server) handleMessage(c *Connection, msg *Message) {
	if msg.Type != TypeAuth && c.PlayerID() == "" {
		c.SendError("unauthenticated", fmt.Errorf("authenticate first"))
		return
	}

	switch msg.Type {
	case TypeAuth:
		s.handleAuth(c, msg)
	case TypeListGames:
		s.handleListTables(c)
	case TypeJoinTable:
		s.handleJoin(c, msg)
	case TypeLeave:
		s.handleLeave(c)
	case TypeSitOut:
		s.handleSitOut(c, msg)
	case TypeStartHand:
		s.handleStartHand(c, msg)
	case TypeAction:
		s.handleAction(c, msg)
	default:
		c.SendError("unknown_type", fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (s *Server) handleAuth(c *Connection, msg *Message) {
	var data AuthData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.SendError("bad_message", err)
		return
	}
	id := data.PlayerName
	if id == "" {
		id = uuid.NewString()
	}
	c.setPlayer(id)
	reply, err := NewMessage(TypeAuthOK, AuthOKData{PlayerID: id})
	if err != nil {
		return
	}
	_ = c.SendMessage(reply)
}

func (s *Server) handleListTables(c *Connection) {
	var list TableListData
	for _, t := range s.tables {
		list.Tables = append(list.Tables, t.Summary())
	}
	reply, err := NewMessage(TypeTableList, list)
	if err != nil {
		return
	}
	_ = c.SendMessage(reply)
}

func (s *Server) handleJoin(c *Connection, msg *Message) {
	var data JoinTableData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.SendError("bad_message", err)
		return
	}
	table, ok := s.tables[data.TableID]
	if !ok {
		c.SendError("no_such_table", fmt.Errorf("table %q not found", data.TableID))
		return
	}
	seat, chips, err := table.Join(c.PlayerID(), data.Seat, c)
	if err != nil {
		c.SendError("join_failed", err)
		return
	}
	c.setTable(table.ID, seat)
	reply, merr := NewMessage(TypeJoined, JoinedData{TableID: table.ID, Seat: seat, Chips: chips})
	if merr != nil {
		return
	}
	_ = c.SendMessage(reply)
}

func (s *Server) handleLeave(c *Connection) {
	tableID, _ := c.Table()
	if table, ok := s.tables[tableID]; ok {
		table.Leave(c.PlayerID())
	}
	c.setTable("", -1)
}

func (s *Server) handleSitOut(c *Connection, msg *Message) {
	var data SitOutData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.SendError("bad_message", err)
		return
	}
	table, ok := s.tables[data.TableID]
	if !ok {
		c.SendError("no_such_table", fmt.Errorf("table %q not found", data.TableID))
		return
	}
	if err := table.SitOut(c.PlayerID(), data.Seat, data.SitOut); err != nil {
		c.SendError("sit_out_failed", err)
	}
}

func (s *Server) handleStartHand(c *Connection, msg *Message) {
	var data StartHandData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.SendError("bad_message", err)
		return
	}
	table, ok := s.tables[data.TableID]
	if !ok {
		c.SendError("no_such_table", fmt.Errorf("table %q not found", data.TableID))
		return
	}
	if err := table.StartHand(); err != nil {
		c.SendError("start_failed", err)
	}
}

func (s *Server) handleAction(c *Connection, msg *Message) {
	var data ActionData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.SendError("bad_message", err)
		return
	}
	table, ok := s.tables[data.TableID]
	if !ok {
		c.SendError("no_such_table", fmt.Errorf("table %q not found", data.TableID))
		return
	}
	action, err := game.ParseAction(data.Action)
	if err != nil {
		c.SendError("bad_action", err)
		return
	}
	_, seat := c.Table()
	cmd := game.Command{Seat: seat, Action: action, Amount: data.Amount, Discards: data.Discards}
	if err := table.Act(c.PlayerID(), cmd); err != nil {
		c.SendError("action_rejected", err)
		return
	}
	reply, merr := NewMessage(TypeActionAck, ActionAckData{TableID: table.ID, Applied: true})
	if merr != nil {
		return
	}
	_ = c.SendMessage(reply)
}
