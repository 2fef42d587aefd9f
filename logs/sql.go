package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key autoincrement,
  time datetime not null,
  player_x varchar,
  player_o varchar,
  rule string,
  winner string,
  plies int,
  record text
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, side, win, plies
) AS
SELECT id, player_x, player_o, 'X',
       CASE winner WHEN 'X' THEN 'win' WHEN 'O' THEN 'lose' ELSE 'none' END,
       plies
 FROM games
UNION
SELECT id, player_o, player_x, 'O',
       CASE winner WHEN 'O' THEN 'win' WHEN 'X' THEN 'lose' ELSE 'none' END,
       plies
 FROM games
`

const insertStmt = `
INSERT INTO games (time, player_x, player_o, rule, winner, plies, record)
VALUES (:time, :player_x, :player_o, :rule, :winner, :plies, :record)
`

const selectRecent = `
SELECT id, time, player_x, player_o, rule, winner, plies, record
FROM games
ORDER BY id DESC
LIMIT ?
`

const selectStandings = `
SELECT player, win, COUNT(*) AS games
FROM player_games
GROUP BY player, win
ORDER BY player, win
`
