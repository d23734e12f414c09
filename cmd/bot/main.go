package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/palemoky/strike-arena/internal/protocol"
)

// 冒烟测试机器人：连接服务器，创建房间并开始对局，
// 然后像真实玩家一样持续上报移动，用于手工压测和联调。
func main() {
	addr := flag.String("addr", "localhost:3001", "服务器地址")
	nickname := flag.String("nickname", "smoke-bot", "机器人昵称")
	joinRoom := flag.String("join", "", "加入指定房间（默认自建房间）")
	team := flag.String("team", "T", "选择阵营 (T/CT)")
	updateHz := flag.Int("hz", 20, "移动上报频率")
	flag.Parse()

	u := url.URL{
		Scheme:   "ws",
		Host:     *addr,
		Path:     "/ws",
		RawQuery: fmt.Sprintf("nickname=%s&color=%s", url.QueryEscape(*nickname), url.QueryEscape("#0f0")),
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("连接失败: %v", err)
	}
	defer conn.Close()

	log.Printf("已连接 %s", u.String())

	// 读协程：打印服务端事件
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Printf("连接断开: %v", err)
				return
			}
			msg, err := protocol.Decode(data)
			if err != nil {
				continue
			}
			switch msg.Type {
			case protocol.MsgAnnouncement:
				payload, err := protocol.ParsePayload[protocol.AnnouncementPayload](msg)
				if err == nil {
					log.Printf("📢 %s", payload.Text)
				}
			case protocol.MsgGameStateUpdate, protocol.MsgPlayerMoved:
				// 高频消息不刷屏
			default:
				log.Printf("⬅️  %s", msg.Type)
			}
		}
	}()

	send := func(msgType protocol.MessageType, payload any) {
		if err := conn.WriteJSON(protocol.MustNewMessage(msgType, payload)); err != nil {
			log.Fatalf("发送失败: %v", err)
		}
	}

	// 进房、选边、开局
	if *joinRoom != "" {
		send(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: *joinRoom})
	} else {
		send(protocol.MsgCreateRoom, protocol.CreateRoomPayload{Map: "de_dust2"})
	}
	send(protocol.MsgSwitchTeam, protocol.SwitchTeamPayload{Team: protocol.Team(*team)})
	if *joinRoom == "" {
		send(protocol.MsgStartGame, nil)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 按指定频率上报移动
	ticker := time.NewTicker(time.Second / time.Duration(*updateHz))
	defer ticker.Stop()

	x, z := rand.Float64()*10, rand.Float64()*10
	for {
		select {
		case <-done:
			return
		case <-quit:
			log.Println("退出")
			return
		case <-ticker.C:
			x += rand.Float64()*0.4 - 0.2
			z += rand.Float64()*0.4 - 0.2
			send(protocol.MsgUpdate, protocol.UpdatePayload{
				Pos:    protocol.Vec3{X: x, Y: 0, Z: z},
				Rot:    protocol.Rotation{Y: rand.Float64() * 6.28},
				Weapon: "pistol",
				AnimState: protocol.AnimState{
					IsMoving: true,
				},
			})
		}
	}
}
